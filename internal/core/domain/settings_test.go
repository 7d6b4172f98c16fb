package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, DefaultLLMModel, s.LLM.Model)
	assert.Equal(t, DefaultLLMTemperature, s.LLM.Temperature)
	assert.Equal(t, DefaultLLMTimeoutSeconds, s.LLM.TimeoutSeconds)
	assert.Equal(t, DefaultRequestsPerSecond, s.LLM.RequestsPerSecond)
	assert.Empty(t, s.OpenAIAPIKey)
	assert.Empty(t, s.DatabaseURL)
}

func TestAppSettings_Validate(t *testing.T) {
	s := DefaultAppSettings()
	assert.ErrorIs(t, s.Validate(), ErrAPIKeyRequired)

	s.OpenAIAPIKey = "sk-test"
	assert.NoError(t, s.Validate())
}
