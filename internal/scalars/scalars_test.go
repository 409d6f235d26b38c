package scalars

import (
	"math"
	"testing"
	"time"

	"github.com/graphql-go/graphql/language/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBigIntScalar(t *testing.T) {
	scalar := BigInt()

	serialized := scalar.Serialize(int64(9223372036854775807))
	assert.Equal(t, "9223372036854775807", serialized)

	parsed := scalar.ParseValue("42")
	require.IsType(t, int64(0), parsed)
	assert.Equal(t, int64(42), parsed)

	invalid := scalar.ParseValue("not-a-number")
	assert.Nil(t, invalid)

	assert.Nil(t, scalar.Serialize(float64(math.MaxInt64)*2))
	assert.Nil(t, scalar.ParseValue(float64(math.MaxInt64)*2))
}

func TestDateScalar(t *testing.T) {
	scalar := Date()

	input := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	serialized := scalar.Serialize(input)
	assert.Equal(t, "2024-01-15", serialized)

	// Unparsed driver values come through as strings.
	assert.Equal(t, "2024-01-15", scalar.Serialize("2024-01-15"))
	assert.Equal(t, "2024-01-15", scalar.Serialize("2024-01-15 10:30:00"))

	parsed := scalar.ParseValue("2024-01-02")
	require.IsType(t, time.Time{}, parsed)
	assert.Equal(t, "2024-01-02", parsed.(time.Time).Format("2006-01-02"))

	parsedRFC := scalar.ParseValue("2024-01-02T11:12:13Z")
	require.IsType(t, time.Time{}, parsedRFC)
	assert.Equal(t, "2024-01-02", parsedRFC.(time.Time).Format("2006-01-02"))
	assert.Equal(t, 0, parsedRFC.(time.Time).Hour())

	assert.Nil(t, scalar.ParseValue(42))
}

func TestNonNegativeIntScalar(t *testing.T) {
	scalar := NonNegativeInt()

	assert.Equal(t, 3, scalar.Serialize(3))
	assert.Nil(t, scalar.Serialize(-1))

	assert.Equal(t, 4, scalar.ParseValue("4"))
	assert.Nil(t, scalar.ParseValue("-2"))

	literal := scalar.ParseLiteral(&ast.IntValue{Value: "7"})
	assert.Equal(t, 7, literal)
}

func TestUUIDScalar(t *testing.T) {
	scalar := UUID()

	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", scalar.ParseValue("550E8400-E29B-41D4-A716-446655440000"))
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", scalar.ParseLiteral(&ast.StringValue{Value: "550E8400-E29B-41D4-A716-446655440000"}))
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", scalar.Serialize("550E8400-E29B-41D4-A716-446655440000"))

	assert.Nil(t, scalar.ParseValue("not-a-uuid"))
	assert.Nil(t, scalar.ParseLiteral(&ast.IntValue{Value: "42"}))
}
