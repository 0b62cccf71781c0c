package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalizedText_Resolve(t *testing.T) {
	text := LocalizedText{FR: "Vélo", ES: "Bicicleta", EN: "Bike"}

	assert.Equal(t, "Bike", text.Resolve(LangEN))
	assert.Equal(t, "Bicicleta", text.Resolve(LangES))
	assert.Equal(t, "Vélo", text.Resolve(LangFR))

	t.Run("Falls back to French", func(t *testing.T) {
		assert.Equal(t, "Vélo", LocalizedText{FR: "Vélo", ES: "Bicicleta"}.Resolve(LangEN))
	})

	t.Run("Falls back to Spanish when French is blank", func(t *testing.T) {
		assert.Equal(t, "Bicicleta", LocalizedText{ES: "Bicicleta"}.Resolve(LangEN))
	})

	t.Run("English is never a fallback", func(t *testing.T) {
		assert.Equal(t, "", LocalizedText{EN: "Bike"}.Resolve(LangFR))
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, "", LocalizedText{}.Resolve(LangFR))
	})
}

func TestAssembleDisassembleRoundTrip(t *testing.T) {
	cases := []LocalizedText{
		{FR: "Casque"},
		{FR: "Casque", ES: "Casco"},
		{FR: "Casque", ES: "Casco", EN: "Helmet"},
		{FR: " espace ", EN: "Helmet"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc, AssembleLocalized(DisassembleLocalized(tc)))
	}
}

func TestDisassembleLocalized_AbsentLanguagesAreEmpty(t *testing.T) {
	fields := DisassembleLocalized(LocalizedText{FR: "Casque"})

	assert.Equal(t, map[string]string{"fr": "Casque", "es": "", "en": ""}, fields)
}

func TestAssembleLocalized_SuffixCase(t *testing.T) {
	text := AssembleLocalized(map[string]string{"Fr": "Casque", "ES": "Casco", "de": "Helm"})

	assert.Equal(t, LocalizedText{FR: "Casque", ES: "Casco"}, text)
}

func TestLocalizedFromForm(t *testing.T) {
	form := map[string]string{"nameFr": "Scooter", "nameEs": "", "nameEn": "Scooter", "sku": "SC-1"}

	text := LocalizedFromForm("name", form)
	assert.Equal(t, LocalizedText{FR: "Scooter", EN: "Scooter"}, text)
	assert.Equal(t, map[string]string{"nameFr": "Scooter", "nameEs": "", "nameEn": "Scooter"}, FormFields("name", text))
}

func TestLocalizedText_ApplyForm(t *testing.T) {
	text := LocalizedText{FR: "Casque", ES: "Casco", EN: "Helmet"}
	text.ApplyForm("name", map[string]string{"nameFr": "Casque jet", "nameEn": "", "descriptionEs": "x"})

	assert.Equal(t, LocalizedText{FR: "Casque jet", ES: "Casco"}, text)
}

func TestLocalizedText_RequireFR(t *testing.T) {
	verr := &ValidationError{}
	LocalizedText{ES: "Casco"}.RequireFR("name", verr)

	require.Error(t, verr.OrNil())
	assert.Equal(t, "nameFr", verr.Fields[0].Field)
}

func TestLocalizedText_UnmarshalJSON(t *testing.T) {
	t.Run("Object", func(t *testing.T) {
		var text LocalizedText
		require.NoError(t, json.Unmarshal([]byte(`{"fr":"Vélo","en":"Bike"}`), &text))
		assert.Equal(t, LocalizedText{FR: "Vélo", EN: "Bike"}, text)
	})

	t.Run("Bare string", func(t *testing.T) {
		var text LocalizedText
		require.NoError(t, json.Unmarshal([]byte(`"Vélo"`), &text))
		assert.Equal(t, LocalizedText{FR: "Vélo"}, text)
	})

	t.Run("Null", func(t *testing.T) {
		text := LocalizedText{FR: "old"}
		require.NoError(t, json.Unmarshal([]byte(`null`), &text))
		assert.True(t, text.IsZero())
	})
}
