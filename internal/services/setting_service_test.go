package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"netops/internal/models/request_models"
	"netops/internal/repositories"
	"netops/pkg/utils"
)

func TestSettingService(t *testing.T) {
	db := setupTestDB(t)
	f := seedGeo(t, db)
	svc := NewSettingService(repositories.NewSettingRepository(db), newAudit(db))
	admin := f.adminActor()

	saved, err := svc.Upsert(bg, admin, request_models.UpsertSettingsRequest{Settings: []request_models.SettingItem{
		{Key: "site_name", Value: "NetOps"},
		{Key: "smtp_host", Value: "mail.local", Category: "mail", Description: "<b>Outgoing</b> relay"},
		{Key: "site_name", Value: "NetOps HQ"},
	}})
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, "NetOps HQ", saved[0].Value)
	assert.Equal(t, "general", saved[0].Category)
	assert.Equal(t, "Outgoing relay", saved[1].Description)
	assert.Equal(t, int64(1), countLogs(t, db, ActionUpdateSettings))

	t.Run("upsert overwrites by key", func(t *testing.T) {
		_, err := svc.Upsert(bg, admin, request_models.UpsertSettingsRequest{Settings: []request_models.SettingItem{
			{Key: "smtp_host", Value: "relay.local", Category: "mail"},
		}})
		require.NoError(t, err)

		mail, err := svc.ByCategory(bg, "mail")
		require.NoError(t, err)
		require.Len(t, mail, 1)
		assert.Equal(t, "relay.local", mail[0].Value)
	})

	t.Run("grouped and exported", func(t *testing.T) {
		grouped, err := svc.Grouped(bg)
		require.NoError(t, err)
		assert.Len(t, grouped["general"], 1)
		assert.Len(t, grouped["mail"], 1)

		raw, err := svc.ExportYAML(bg)
		require.NoError(t, err)
		var doc struct {
			Settings map[string][]map[string]string `yaml:"settings"`
		}
		require.NoError(t, yaml.Unmarshal(raw, &doc))
		assert.Equal(t, "relay.local", doc.Settings["mail"][0]["value"])
		assert.NotContains(t, string(raw), "updated_at")
	})

	t.Run("blank key is rejected", func(t *testing.T) {
		_, err := svc.Upsert(bg, admin, request_models.UpsertSettingsRequest{Settings: []request_models.SettingItem{{Key: "  "}}})
		var validationErr *utils.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.Delete(bg, admin, "site_name"))
		assert.ErrorIs(t, svc.Delete(bg, admin, "site_name"), utils.ErrSettingNotFound)

		general, err := svc.ByCategory(bg, "general")
		require.NoError(t, err)
		assert.Empty(t, general)
	})
}
