package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperationTypeOf(t *testing.T) {
	assert.Equal(t, "query", operationTypeOf("{ studies { nctId } }"))
	assert.Equal(t, "query", operationTypeOf("query Studies { studies { nctId } }"))
	assert.Equal(t, "mutation", operationTypeOf("mutation { searchDelete(searchUuid: \"x\") { title } }"))
	assert.Equal(t, "unknown", operationTypeOf("   "))
}

func TestResponseHasGraphQLErrors(t *testing.T) {
	assert.False(t, responseHasGraphQLErrors(nil))
	assert.False(t, responseHasGraphQLErrors([]byte(`{"data":{"studies":[]}}`)))
	assert.False(t, responseHasGraphQLErrors([]byte(`{"data":null,"errors":null}`)))
	assert.True(t, responseHasGraphQLErrors([]byte(`{"errors":[{"message":"boom"}]}`)))
}
