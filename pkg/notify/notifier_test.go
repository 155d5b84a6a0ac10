package notify_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldsuite/entitlement/pkg/notify"
	"github.com/fieldsuite/entitlement/pkg/plan"
)

func quotaPrompt() notify.Prompt {
	return notify.Prompt{
		TenantID:  uuid.New(),
		Tier:      plan.TierFree,
		Resource:  plan.ResourceTechnicians,
		Current:   1,
		Limit:     plan.Capped(1),
		CreatedAt: time.Now().UTC(),
	}
}

func TestMemoryNotifier(t *testing.T) {
	t.Parallel()

	n := notify.NewMemoryNotifier()
	p := quotaPrompt()

	require.NoError(t, n.PromptUpgrade(context.Background(), p))
	require.NoError(t, n.PromptUpgrade(context.Background(), p))

	prompts := n.Prompts()
	require.Len(t, prompts, 2)
	assert.Equal(t, p.TenantID, prompts[0].TenantID)

	// Returned slice is a copy.
	prompts[0].Tier = plan.TierEnterprise
	assert.Equal(t, plan.TierFree, n.Prompts()[0].Tier)

	n.Reset()
	assert.Empty(t, n.Prompts())
}

func TestLogNotifier(t *testing.T) {
	t.Parallel()

	t.Run("quota denial", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		n := notify.NewLogNotifier(slog.New(slog.NewTextHandler(&buf, nil)))

		require.NoError(t, n.PromptUpgrade(context.Background(), quotaPrompt()))

		out := buf.String()
		assert.Contains(t, out, "upgrade prompt")
		assert.Contains(t, out, "resource=technicians")
		assert.Contains(t, out, "limit=1")
	})

	t.Run("feature denial", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		n := notify.NewLogNotifier(slog.New(slog.NewTextHandler(&buf, nil)))

		p := notify.Prompt{
			TenantID: uuid.New(),
			Tier:     plan.TierBasic,
			Feature:  plan.FeaturePDFExport,
		}
		require.NoError(t, n.PromptUpgrade(context.Background(), p))

		assert.Contains(t, buf.String(), "feature=pdf_export")
	})
}

func TestNotifierFunc(t *testing.T) {
	t.Parallel()

	var called bool
	fn := notify.NotifierFunc(func(ctx context.Context, p notify.Prompt) error {
		called = true
		return nil
	})

	require.NoError(t, fn.PromptUpgrade(context.Background(), quotaPrompt()))
	assert.True(t, called)
}
