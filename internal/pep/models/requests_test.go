package models_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pepgate/internal/pep/models"
	dErrors "pepgate/pkg/domain-errors"
)

func TestParseDeclarationNotExposedClearsNames(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"explicit false without names", `{"is_politically_exposed": false}`},
		{"explicit false with names", `{"is_politically_exposed": false, "politically_exposed_names": ["Jane Doe"]}`},
		{"absent flag", `{}`},
		{"absent flag with malformed names", `{"politically_exposed_names": [1, 2, 3]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decl, err := models.ParseDeclaration([]byte(tt.body))
			require.NoError(t, err)
			assert.False(t, decl.IsExposed)
			assert.Empty(t, decl.ExposedNames)
		})
	}
}

func TestParseDeclarationExposedRequiresNames(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no names field", `{"is_politically_exposed": true}`},
		{"empty names", `{"is_politically_exposed": true, "politically_exposed_names": []}`},
		{"empty string name", `{"is_politically_exposed": true, "politically_exposed_names": [""]}`},
		{"name over 100 chars", `{"is_politically_exposed": true, "politically_exposed_names": ["` + strings.Repeat("a", 101) + `"]}`},
		{"one bad name among good ones", `{"is_politically_exposed": true, "politically_exposed_names": ["Jane Doe", ""]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := models.ParseDeclaration([]byte(tt.body))
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		})
	}
}

func TestParseDeclarationExposedKeepsNameOrder(t *testing.T) {
	body := `{"is_politically_exposed": true, "politically_exposed_names": ["Jane Doe", "John Roe"]}`
	decl, err := models.ParseDeclaration([]byte(body))
	require.NoError(t, err)
	assert.True(t, decl.IsExposed)
	assert.Equal(t, []string{"Jane Doe", "John Roe"}, decl.ExposedNames)
}

func TestParseDeclarationBoundaryLengthName(t *testing.T) {
	body := `{"is_politically_exposed": true, "politically_exposed_names": ["` + strings.Repeat("a", 100) + `"]}`
	_, err := models.ParseDeclaration([]byte(body))
	require.NoError(t, err)
}

func TestParseDeclarationWrongTypes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"flag as string", `{"is_politically_exposed": "yes"}`},
		{"names as string when exposed", `{"is_politically_exposed": true, "politically_exposed_names": "Jane Doe"}`},
		{"names as numbers when exposed", `{"is_politically_exposed": true, "politically_exposed_names": [1]}`},
		{"not json", `is_politically_exposed`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := models.ParseDeclaration([]byte(tt.body))
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		})
	}
}

func TestNewRecordWithAndWithoutDevice(t *testing.T) {
	identity := models.Identity{UniqueID: "user-1"}
	decl := models.Declaration{IsExposed: true, ExposedNames: []string{"Jane Doe"}}

	withDevice := models.NewRecord(identity, decl, &models.DeviceContext{
		DeviceInfo: map[string]any{"precision": 1},
		DeviceID:   "device-9",
	})
	assert.Equal(t, "user-1", withDevice.UniqueID)
	assert.Equal(t, "device-9", withDevice.DeviceID)
	assert.NotNil(t, withDevice.DeviceInfo)

	withoutDevice := models.NewRecord(identity, decl, nil)
	assert.Empty(t, withoutDevice.DeviceID)
	assert.Nil(t, withoutDevice.DeviceInfo)
}
