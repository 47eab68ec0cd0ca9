package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlocks_CanonicalOrderAndIdentity(t *testing.T) {
	got := Blocks()
	require.Len(t, got, 9)

	fields := make([]string, 0, len(got))
	ids := make(map[string]bool)
	for _, b := range got {
		fields = append(fields, b.Field)
		assert.NotEmpty(t, b.Title, b.Field)
		assert.NotEmpty(t, b.Placeholder, b.Field)
		assert.False(t, ids[b.ID], "duplicate id %s", b.ID)
		ids[b.ID] = true
	}

	assert.Equal(t, []string{
		FieldKeyPartners,
		FieldKeyActivities,
		FieldKeyResources,
		FieldValuePropositions,
		FieldCustomerRelationships,
		FieldChannels,
		FieldCustomerSegments,
		FieldCostStructure,
		FieldRevenueStreams,
	}, fields)
}

func TestBlocks_ReturnsCopy(t *testing.T) {
	got := Blocks()
	got[0].Title = "changed"

	b, ok := Lookup(FieldKeyPartners)
	require.True(t, ok)
	assert.Equal(t, "핵심 파트너", b.Title)
}

func TestLookup(t *testing.T) {
	b, ok := Lookup(FieldChannels)
	require.True(t, ok)
	assert.Equal(t, "channels", b.ID)
	assert.Equal(t, "유통 채널 정의 필요", b.Fallback)

	_, ok = Lookup("name")
	assert.False(t, ok)
	assert.False(t, IsBlockField("id"))
	assert.True(t, IsBlockField(FieldCostStructure))
}

func TestSeededBlocksHaveNoFallback(t *testing.T) {
	for _, field := range []string{FieldKeyResources, FieldCustomerRelationships, FieldCostStructure} {
		assert.Empty(t, MustLookup(field).Fallback, field)
	}
}

func TestMustLookup_PanicsOnUnknown(t *testing.T) {
	assert.Panics(t, func() { MustLookup("unknown") })
}

func TestCatalog(t *testing.T) {
	c := Catalog()
	assert.Equal(t, catalogVersion, c.Version)
	assert.Len(t, c.Blocks, 9)
}
