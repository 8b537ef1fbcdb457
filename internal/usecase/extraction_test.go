package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/vital-sales-pro/internal/usecase"
)

func TestParseCandidatesFromProse(t *testing.T) {
	content := "Here are the leads: {\"leads\":[{\"name\":\"X\",\"phone\":null,\"address\":null,\"website\":null,\"businessType\":\"loja\",\"score\":80,\"notes\":\"\"}]} Hope this helps."

	candidates, err := usecase.ParseCandidates(content)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "X", candidates[0].Name)
	assert.Nil(t, candidates[0].Phone)
	assert.Equal(t, "loja", candidates[0].BusinessType)
	assert.Equal(t, 80, candidates[0].Score)
}

func TestParseCandidatesWithoutJSON(t *testing.T) {
	candidates, err := usecase.ParseCandidates("I couldn't find anything.")
	assert.Empty(t, candidates)

	var parseErr *usecase.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParseCandidatesFromCodeFence(t *testing.T) {
	content := "```json\n{\n  \"leads\": [\n    {\"name\": \"Limpa Tudo {Centro}\", \"phone\": \"85 3333-4444\", \"address\": \"null\", \"website\": \"\", \"businessType\": \"distribuidora\", \"score\": \"72\", \"notes\": \"aspas \\\" e chaves }\"}\n  ]\n}\n```"

	candidates, err := usecase.ParseCandidates(content)
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	c := candidates[0]
	assert.Equal(t, "Limpa Tudo {Centro}", c.Name)
	require.NotNil(t, c.Phone)
	assert.Equal(t, "85 3333-4444", *c.Phone)
	assert.Nil(t, c.Address)
	assert.Nil(t, c.Website)
	assert.Equal(t, 72, c.Score)
	assert.Equal(t, "aspas \" e chaves }", c.Notes)
}

func TestParseCandidatesSkipsBrokenObject(t *testing.T) {
	content := `{not json} then {"leads":[{"name":"Y","score":150.4}]}`

	candidates, err := usecase.ParseCandidates(content)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "Y", candidates[0].Name)
	assert.Equal(t, 100, candidates[0].Score)
}

func TestParseCandidatesDropsNamelessEntries(t *testing.T) {
	candidates, err := usecase.ParseCandidates(`{"leads":[{"name":"  "},{"name":"Z","score":-3}]}`)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "Z", candidates[0].Name)
	assert.Equal(t, 0, candidates[0].Score)
}

func TestParseCandidatesEmptyList(t *testing.T) {
	candidates, err := usecase.ParseCandidates(`{"leads":[]}`)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestParseCandidatesKeepsEntriesWithNumericFields(t *testing.T) {
	content := `{"leads":[
		{"name":"A","phone":"85 9999-0000","address":null,"website":null,"businessType":"loja","score":70,"notes":""},
		{"name":"B","phone":8599990000,"address":null,"website":null,"businessType":"loja","score":55,"notes":12}
	]}`

	candidates, err := usecase.ParseCandidates(content)
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	assert.Equal(t, "A", candidates[0].Name)
	require.NotNil(t, candidates[1].Phone)
	assert.Equal(t, "8599990000", *candidates[1].Phone)
	assert.Equal(t, "12", candidates[1].Notes)
	assert.Nil(t, candidates[1].Address)
}

func TestParseCandidatesIgnoresNestedValues(t *testing.T) {
	candidates, err := usecase.ParseCandidates(`{"leads":[{"name":"C","website":{"url":"x"},"businessType":["a"],"score":40}]}`)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Empty(t, candidates[0].BusinessType)
	assert.Equal(t, 40, candidates[0].Score)
}
