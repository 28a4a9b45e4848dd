package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseIDs_StrictRejectsMalformed(t *testing.T) {
	valid := primitive.NewObjectID()
	_, err := parseIDs([]string{valid.Hex(), "not-an-id"}, true)
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestParseIDs_LenientDropsMalformed(t *testing.T) {
	valid := primitive.NewObjectID()
	ids, err := parseIDs([]string{"garbage", valid.Hex(), ""}, false)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{valid}, ids)
}

func TestParseIDs_DeduplicatesKeepingFirstOccurrence(t *testing.T) {
	a, b := primitive.NewObjectID(), primitive.NewObjectID()
	ids, err := parseIDs([]string{a.Hex(), b.Hex(), a.Hex()}, true)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{a, b}, ids)
}

func TestDiffIDs(t *testing.T) {
	a, b, c := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()

	toAdd, toRemove := diffIDs([]primitive.ObjectID{a, b}, []primitive.ObjectID{b, c})
	assert.Equal(t, []primitive.ObjectID{c}, toAdd)
	assert.Equal(t, []primitive.ObjectID{a}, toRemove)
}

func TestDiffIDs_NoChanges(t *testing.T) {
	a := primitive.NewObjectID()

	toAdd, toRemove := diffIDs([]primitive.ObjectID{a}, []primitive.ObjectID{a})
	assert.Empty(t, toAdd)
	assert.Empty(t, toRemove)
}
