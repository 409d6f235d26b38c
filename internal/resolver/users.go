package resolver

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/graphql-go/graphql"

	"biomed-graphql/internal/dbexec"
	"biomed-graphql/internal/entitymeta"
	"biomed-graphql/internal/middleware"
	"biomed-graphql/internal/qerr"
	"biomed-graphql/internal/sqlutil"
)

// Application users are keyed by the identity subject the auth middleware
// validated. A request may only read or modify the user record matching
// its own token; when auth is disabled there is no token to check against.

// UserBySubject resolves the application user owning the given subject.
func (r *Resolver) UserBySubject(p graphql.ResolveParams) (interface{}, error) {
	subject, ok := stringArg(p.Args, "subject")
	if !ok || subject == "" {
		return nil, nil
	}
	if err := authorizeSubject(p.Context, subject); err != nil {
		return nil, err
	}
	plan, err := r.projectionFor(p, entitymeta.EntityUser)
	if err != nil {
		return nil, err
	}
	b := sq.Select(plan.QualifiedColumns()...).
		From("users").
		Where(sq.Eq{"users.subject": subject}).
		Limit(1).
		PlaceholderFormat(sq.Question)

	records, err := r.fetch(p.Context, plan, b)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

// UserUpsert creates or refreshes the user record for an identity subject.
// The refreshed user row is returned.
func (r *Resolver) UserUpsert(p graphql.ResolveParams) (interface{}, error) {
	input, ok := p.Args["user"].(map[string]interface{})
	if !ok {
		return nil, qerr.NewConfigurationError("user", "user input is required")
	}
	subject, _ := stringArg(input, "subject")
	if subject == "" {
		return nil, qerr.NewConfigurationError("subject", "subject is required")
	}
	email, _ := stringArg(input, "email")
	if email == "" {
		return nil, qerr.NewConfigurationError("email", "email is required")
	}
	if err := authorizeSubject(p.Context, subject); err != nil {
		return nil, err
	}

	ctx := p.Context
	upsert := sq.Insert("users").
		Columns("subject", "email").
		Values(subject, email).
		Suffix("ON DUPLICATE KEY UPDATE email = VALUES(email)").
		PlaceholderFormat(sq.Question)
	if err := r.exec(ctx, upsert); err != nil {
		return nil, err
	}

	record, err := r.userBySubject(ctx, subject)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, &qerr.UnresolvedReference{Kind: "user", Key: subject}
	}
	return record, nil
}

// UserDelete removes a user together with everything they own: their saved
// searches (and the searches' descriptor links) and their study and
// citation bookmarks. Deleting an unknown subject yields nil.
func (r *Resolver) UserDelete(p graphql.ResolveParams) (interface{}, error) {
	subject, ok := stringArg(p.Args, "subject")
	if !ok || subject == "" {
		return nil, qerr.NewConfigurationError("subject", "subject is required")
	}
	if err := authorizeSubject(p.Context, subject); err != nil {
		return nil, err
	}

	ctx := p.Context
	record, err := r.userBySubject(ctx, subject)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}
	userID, _ := int64Arg(record, "user_id")

	searchIDs, err := r.selectColumn(ctx, sq.Select(sqlutil.Qualify(entitymeta.TableUserSearches, "search_id")).
		From(entitymeta.TableUserSearches).
		Where(sq.Eq{"user_id": userID}).
		PlaceholderFormat(sq.Question))
	if err != nil {
		return nil, err
	}
	if len(searchIDs) > 0 {
		clearDescriptors := sq.Delete(entitymeta.TableSearchDescriptors).
			Where(sq.Eq{"search_id": searchIDs}).
			PlaceholderFormat(sq.Question)
		if err := r.exec(ctx, clearDescriptors); err != nil {
			return nil, err
		}
		clearSearches := sq.Delete("searches").
			Where(sq.Eq{"search_id": searchIDs}).
			PlaceholderFormat(sq.Question)
		if err := r.exec(ctx, clearSearches); err != nil {
			return nil, err
		}
	}

	for _, junction := range []string{
		entitymeta.TableUserSearches,
		entitymeta.TableUserStudies,
		entitymeta.TableUserCitations,
	} {
		clear := sq.Delete(junction).
			Where(sq.Eq{"user_id": userID}).
			PlaceholderFormat(sq.Question)
		if err := r.exec(ctx, clear); err != nil {
			return nil, err
		}
	}

	del := sq.Delete("users").
		Where(sq.Eq{"user_id": userID}).
		PlaceholderFormat(sq.Question)
	if err := r.exec(ctx, del); err != nil {
		return nil, err
	}
	return record, nil
}

// UserStudyUpsert bookmarks a study, identified by its registry id, for
// the user. The user row is returned.
func (r *Resolver) UserStudyUpsert(p graphql.ResolveParams) (interface{}, error) {
	user, studyID, err := r.userStudyTarget(p)
	if err != nil {
		return nil, err
	}
	userID, _ := int64Arg(user, "user_id")

	link := sq.Insert(entitymeta.TableUserStudies).
		Options("IGNORE").
		Columns("user_id", "study_id").
		Values(userID, studyID).
		PlaceholderFormat(sq.Question)
	if err := r.exec(p.Context, link); err != nil {
		return nil, err
	}
	return user, nil
}

// UserStudyDelete removes a study bookmark. Deleting a link to an unknown
// study is a no-op, so a stale bookmark reference cannot fail the request.
func (r *Resolver) UserStudyDelete(p graphql.ResolveParams) (interface{}, error) {
	user, studyID, err := r.userStudyTarget(p)
	if qerr.IsUnresolved(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	userID, _ := int64Arg(user, "user_id")

	unlink := sq.Delete(entitymeta.TableUserStudies).
		Where(sq.Eq{"user_id": userID, "study_id": studyID}).
		PlaceholderFormat(sq.Question)
	if err := r.exec(p.Context, unlink); err != nil {
		return nil, err
	}
	return user, nil
}

// UserCitationUpsert bookmarks a citation, identified by its PubMed id,
// for the user. The user row is returned.
func (r *Resolver) UserCitationUpsert(p graphql.ResolveParams) (interface{}, error) {
	user, citationID, err := r.userCitationTarget(p)
	if err != nil {
		return nil, err
	}
	userID, _ := int64Arg(user, "user_id")

	link := sq.Insert(entitymeta.TableUserCitations).
		Options("IGNORE").
		Columns("user_id", "citation_id").
		Values(userID, citationID).
		PlaceholderFormat(sq.Question)
	if err := r.exec(p.Context, link); err != nil {
		return nil, err
	}
	return user, nil
}

// UserCitationDelete removes a citation bookmark, tolerating unknown
// targets the same way UserStudyDelete does.
func (r *Resolver) UserCitationDelete(p graphql.ResolveParams) (interface{}, error) {
	user, citationID, err := r.userCitationTarget(p)
	if qerr.IsUnresolved(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	userID, _ := int64Arg(user, "user_id")

	unlink := sq.Delete(entitymeta.TableUserCitations).
		Where(sq.Eq{"user_id": userID, "citation_id": citationID}).
		PlaceholderFormat(sq.Question)
	if err := r.exec(p.Context, unlink); err != nil {
		return nil, err
	}
	return user, nil
}

// userStudyTarget resolves the user and study a bookmark mutation acts on.
// A missing user or study surfaces as an UnresolvedReference.
func (r *Resolver) userStudyTarget(p graphql.ResolveParams) (map[string]any, int64, error) {
	user, err := r.mutationUser(p)
	if err != nil {
		return nil, 0, err
	}
	nctID, _ := stringArg(p.Args, "nctId")
	if nctID == "" {
		return nil, 0, qerr.NewConfigurationError("nctId", "nctId is required")
	}
	studyID, found, err := r.lookupID(p.Context, "studies", "study_id", sq.Eq{"studies.nct_id": nctID})
	if err != nil {
		return nil, 0, err
	}
	if !found {
		return nil, 0, &qerr.UnresolvedReference{Kind: "study", Key: nctID}
	}
	return user, studyID, nil
}

// userCitationTarget is the citations counterpart of userStudyTarget.
func (r *Resolver) userCitationTarget(p graphql.ResolveParams) (map[string]any, int64, error) {
	user, err := r.mutationUser(p)
	if err != nil {
		return nil, 0, err
	}
	pmid, ok := int64Arg(p.Args, "pmid")
	if !ok {
		return nil, 0, qerr.NewConfigurationError("pmid", "pmid is required")
	}
	citationID, found, err := r.lookupID(p.Context, "citations", "citation_id", sq.Eq{"citations.pmid": pmid})
	if err != nil {
		return nil, 0, err
	}
	if !found {
		return nil, 0, &qerr.UnresolvedReference{Kind: "citation", Key: fmt.Sprint(pmid)}
	}
	return user, citationID, nil
}

// mutationUser authorizes and fetches the user a bookmark mutation names.
func (r *Resolver) mutationUser(p graphql.ResolveParams) (map[string]any, error) {
	subject, ok := stringArg(p.Args, "subject")
	if !ok || subject == "" {
		return nil, qerr.NewConfigurationError("subject", "subject is required")
	}
	if err := authorizeSubject(p.Context, subject); err != nil {
		return nil, err
	}
	user, err := r.userBySubject(p.Context, subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &qerr.UnresolvedReference{Kind: "user", Key: subject}
	}
	return user, nil
}

func (r *Resolver) userBySubject(ctx context.Context, subject string) (map[string]any, error) {
	entity, err := r.Registry.Describe(entitymeta.EntityUser)
	if err != nil {
		return nil, err
	}
	b := sq.Select(qualifyAll(entity.Table, entity.ScalarColumns)...).
		From(entity.Table).
		Where(sq.Eq{"users.subject": subject}).
		Limit(1).
		PlaceholderFormat(sq.Question)

	records, err := r.runSelect(ctx, b, entity.ScalarColumns)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

// lookupID resolves one identity value by an arbitrary condition.
func (r *Resolver) lookupID(ctx context.Context, table, idColumn string, cond sq.Sqlizer) (int64, bool, error) {
	b := sq.Select(sqlutil.Qualify(table, idColumn)).
		From(table).
		Where(cond).
		Limit(1).
		PlaceholderFormat(sq.Question)
	values, err := r.selectColumn(ctx, b)
	if err != nil {
		return 0, false, err
	}
	if len(values) == 0 {
		return 0, false, nil
	}
	id, ok := values[0].(int64)
	if !ok {
		return 0, false, fmt.Errorf("%s.%s is not an int64", table, idColumn)
	}
	return id, true, nil
}

// selectColumn executes a one-column SELECT and drains it into a slice.
func (r *Resolver) selectColumn(ctx context.Context, b sq.SelectBuilder) ([]any, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("compose query: %w", err)
	}
	rows, err := r.Exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, qerr.WrapExecution("query", err)
	}
	values, err := dbexec.ScanSingleColumn(rows)
	if err != nil {
		return nil, qerr.WrapExecution("scan", err)
	}
	return values, nil
}

// authorizeSubject rejects requests whose validated token identifies a
// different subject. Requests without an auth context pass through; that
// is the case when the auth middleware is disabled.
func authorizeSubject(ctx context.Context, subject string) error {
	auth, ok := middleware.AuthFromContext(ctx)
	if !ok {
		return nil
	}
	if auth.Subject != subject {
		return fmt.Errorf("subject %q does not match the authenticated user", subject)
	}
	return nil
}
