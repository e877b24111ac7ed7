package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_Disabled(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 6000, cfg.Tasks[TaskClassify].TimeoutMs)
}

func TestLoadConfig_TaskTimeoutOverrides(t *testing.T) {
	t.Setenv("STRIDE_LLM_TIMEOUT_MS", "9000")
	t.Setenv("STRIDE_LLM_CLASSIFY_TIMEOUT_MS", "3000")
	t.Setenv("STRIDE_LLM_COACH_REPLY_TIMEOUT_MS", "20000")

	cfg := LoadConfig()

	assert.Equal(t, 9000, cfg.TimeoutMs)
	assert.Equal(t, 3000, cfg.TaskTimeout(TaskClassify))
	assert.Equal(t, 20000, cfg.TaskTimeout(TaskCoachReply))
	assert.Equal(t, 10000, cfg.TaskTimeout(TaskSummary))
}

func TestLoadConfig_InvalidTaskTimeoutOverrideIgnored(t *testing.T) {
	t.Setenv("STRIDE_LLM_CLASSIFY_TIMEOUT_MS", "not-a-number")

	cfg := LoadConfig()

	assert.Equal(t, 6000, cfg.TaskTimeout(TaskClassify))
}

func TestLoadConfig_EnabledAndModel(t *testing.T) {
	t.Setenv("STRIDE_LLM_ENABLED", "true")
	t.Setenv("STRIDE_LLM_MODEL", "qwen2.5")

	cfg := LoadConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, "qwen2.5", cfg.Model)
}
