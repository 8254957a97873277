package charge

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/stripegate/internal/infrastructure/fakeapi"
	"github.com/orris-inc/stripegate/internal/interfaces/cli/common"
	"github.com/orris-inc/stripegate/internal/shared/logger"
	"github.com/orris-inc/stripegate/sdk/stripe"
)

const testKey = "sk_test_cli"

func setup(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(fakeapi.New(testKey, logger.NewLoggerWithSlog(slog.New(slog.DiscardHandler))).Handler())
	t.Cleanup(srv.Close)

	t.Chdir(t.TempDir())
	t.Setenv("STRIPEGATE_STRIPE_API_KEY", testKey)
	t.Setenv("STRIPEGATE_LOGGER_LEVEL", "error")

	prev := common.Flags
	common.Flags = common.GlobalFlags{Output: common.FormatJSON, BaseURL: srv.URL + "/v1"}
	t.Cleanup(func() { common.Flags = prev })
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestChargeCommands(t *testing.T) {
	setup(t)

	out, err := execute(t, "create", "--amount", "1000", "--card", "tok_visa", "--metadata", "order=42")
	require.NoError(t, err)

	var created stripe.Charge
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.Equal(t, int64(1000), created.Amount)
	assert.Equal(t, "usd", created.Currency)
	assert.Equal(t, "42", created.Metadata["order"])

	out, err = execute(t, "refund", created.ID, "--amount", "400")
	require.NoError(t, err)
	var refunded stripe.Charge
	require.NoError(t, json.Unmarshal([]byte(out), &refunded))
	assert.Equal(t, int64(400), refunded.AmountRefunded)

	out, err = execute(t, "list", "--count", "5")
	require.NoError(t, err)
	var list stripe.Collection[stripe.Charge]
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, created.ID, list.Data[0].ID)
}

func TestChargeCreateDeclined(t *testing.T) {
	setup(t)

	_, err := execute(t, "create", "--amount", "1000", "--card", fakeapi.DeclinedCardToken)
	require.Error(t, err)
	assert.True(t, stripe.IsCardError(err))
	assert.Equal(t, stripe.ErrorCodeCardDeclined, stripe.CodeOf(err))
}

func TestChargeGetMissingAPIKey(t *testing.T) {
	setup(t)
	t.Setenv("STRIPEGATE_STRIPE_API_KEY", "")

	_, err := execute(t, "get", "ch_123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stripe.api_key is required")
}
