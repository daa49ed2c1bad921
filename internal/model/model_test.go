package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywords(t *testing.T) {
	r := BusinessRecord{Name: "Sharma  Interiors", Industry: "Interior Design", Location: "Pune"}
	assert.Equal(t, []string{"sharma", "interiors"}, r.NameKeywords())
	assert.Equal(t, []string{"interior", "design"}, r.IndustryKeywords())
	assert.Equal(t, []string{"pune"}, r.LocationKeywords())
	assert.Empty(t, Keywords("   "))
}

func TestContainsAny(t *testing.T) {
	assert.True(t, ContainsAny("sharma interiors pune", []string{"delhi", "pune"}))
	assert.False(t, ContainsAny("sharma interiors", []string{"delhi"}))
	assert.False(t, ContainsAny("anything", nil))
}

func TestFieldLabel(t *testing.T) {
	assert.Equal(t, "Website", FieldWebsite.Label())
	assert.Equal(t, "LinkedIn", FieldLinkedIn.Label())
	assert.Equal(t, "Owner(s)", FieldOwner.Label())
	assert.True(t, FieldInstagram.IsSocial())
	assert.False(t, FieldPhone.IsSocial())
}

func TestValue(t *testing.T) {
	v, ok := Some("x").Get()
	assert.True(t, ok)
	assert.Equal(t, "x", v)
	assert.False(t, None().Present())
	assert.Equal(t, "def", None().Or("def"))
	assert.False(t, Value{}.Present())
}

func TestParseQuality(t *testing.T) {
	assert.Equal(t, QualityGood, ParseQuality(" good "))
	assert.Equal(t, QualityPoor, ParseQuality(""))
	assert.Equal(t, Quality("MIXED"), ParseQuality("mixed"))
	assert.Greater(t, QualityExcellent.Rank(), QualityGood.Rank())
	assert.Greater(t, QualityFair.Rank(), QualityPoor.Rank())
	assert.Zero(t, Quality("MIXED").Rank())
}

func TestRawResponseFact(t *testing.T) {
	var nilResp *RawResponse
	_, ok := nilResp.Fact(FieldEmail)
	assert.False(t, ok)

	r := &RawResponse{Facts: []CandidateFact{
		{Field: FieldPhone, Value: "9876543210"},
		{Field: FieldPhone, Value: "1111111111"},
	}}
	v, ok := r.Fact(FieldPhone)
	assert.True(t, ok)
	assert.Equal(t, "9876543210", v)
}

func TestEmptyValidated(t *testing.T) {
	v := EmptyValidated()
	assert.Equal(t, QualityPoor, v.DataQuality)
	assert.Equal(t, "Unknown", v.SourcesUsed)
	assert.Equal(t, "0", v.ConfidenceScore)
	assert.Empty(t, v.ValidationNotes)
	assert.Empty(t, v.Fields)
}
