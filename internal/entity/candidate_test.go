package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidateNormalize(t *testing.T) {
	phone := " (85) 3222-1000 "
	address := "null"
	website := ""

	c := Candidate{
		Name:         " Limpa Tudo Distribuidora ",
		Phone:        &phone,
		Address:      &address,
		Website:      &website,
		BusinessType: "distribuidora",
		Score:        140,
	}
	c.Normalize()

	assert.Equal(t, "Limpa Tudo Distribuidora", c.Name)
	require.NotNil(t, c.Phone)
	assert.Equal(t, "(85) 3222-1000", *c.Phone)
	assert.Nil(t, c.Address)
	assert.Nil(t, c.Website)
	assert.Equal(t, 100, c.Score)

	c.Score = -3
	c.Normalize()
	assert.Equal(t, 0, c.Score)
}
