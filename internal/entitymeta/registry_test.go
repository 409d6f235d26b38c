package entitymeta

import (
	"testing"

	"biomed-graphql/internal/qerr"
)

func TestBiomedicalRegistryIsValid(t *testing.T) {
	reg := Biomedical()

	study, err := reg.Describe(EntityStudy)
	if err != nil {
		t.Fatalf("Describe(Study): %v", err)
	}
	if study.Table != "studies" || study.IdentityColumn != "study_id" {
		t.Fatalf("unexpected study descriptor: %+v", study)
	}
	if !study.HasScalar("overall_status") {
		t.Fatal("overall_status missing from study scalars")
	}
	if study.HasScalar("no_such_column") {
		t.Fatal("HasScalar accepted unknown column")
	}

	rel, ok := study.Relation("descriptors")
	if !ok {
		t.Fatal("study has no descriptors relation")
	}
	if rel.Kind != ManyToMany || rel.JunctionTable != TableStudyDescriptors {
		t.Fatalf("unexpected descriptors relation: %+v", rel)
	}
}

func TestDescribeUnknownEntity(t *testing.T) {
	_, err := Biomedical().Describe("Banana")
	if err == nil {
		t.Fatal("expected error for unknown entity")
	}
	if !qerr.IsConfiguration(err) {
		t.Fatalf("expected ConfigurationError, got %T", err)
	}
}

func TestNewRegistryRejectsDanglingRelation(t *testing.T) {
	_, err := NewRegistry(Entity{
		Name:           "Orphan",
		Table:          "orphans",
		IdentityColumn: "orphan_id",
		Relations: []Relation{{
			Name: "parent", Target: "Missing", Kind: ManyToOne,
			LocalColumn: "parent_id", RemoteColumn: "parent_id",
		}},
	})
	if err == nil {
		t.Fatal("expected validation failure for dangling relation target")
	}
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	e := Entity{Name: "Dup", Table: "dups", IdentityColumn: "dup_id"}
	if _, err := NewRegistry(e, e); err == nil {
		t.Fatal("expected validation failure for duplicate entity name")
	}
}

func TestIdentityColumnAlwaysScalar(t *testing.T) {
	reg := Biomedical()
	for _, name := range reg.Names() {
		e, err := reg.Describe(name)
		if err != nil {
			t.Fatalf("Describe(%s): %v", name, err)
		}
		if !e.HasScalar(e.IdentityColumn) {
			t.Errorf("%s: identity column %q not reported as scalar", name, e.IdentityColumn)
		}
	}
}
