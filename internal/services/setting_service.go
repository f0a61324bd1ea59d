package services

import (
	"context"
	"strings"

	"gopkg.in/yaml.v3"

	"netops/internal/models/db_models"
	"netops/internal/models/request_models"
	"netops/internal/models/response_models"
	"netops/internal/repositories"
	"netops/pkg/utils"
)

const defaultSettingCategory = "general"

type SettingServiceInterface interface {
	Grouped(ctx context.Context) (map[string][]response_models.SettingResponse, error)
	ByCategory(ctx context.Context, category string) ([]response_models.SettingResponse, error)
	Upsert(ctx context.Context, actor Actor, request request_models.UpsertSettingsRequest) ([]response_models.SettingResponse, error)
	Delete(ctx context.Context, actor Actor, key string) error
	ExportYAML(ctx context.Context) ([]byte, error)
}

type SettingService struct {
	settingRepository repositories.SettingRepository
	audit             AuditServiceInterface
}

func NewSettingService(settingRepository repositories.SettingRepository, audit AuditServiceInterface) SettingServiceInterface {
	return &SettingService{settingRepository: settingRepository, audit: audit}
}

func toSettingResponses(settings []db_models.Setting) []response_models.SettingResponse {
	out := make([]response_models.SettingResponse, 0, len(settings))
	for i := range settings {
		out = append(out, response_models.ToSettingResponse(&settings[i]))
	}
	return out
}

func (s *SettingService) Grouped(ctx context.Context) (map[string][]response_models.SettingResponse, error) {
	settings, err := s.settingRepository.ListAll(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	grouped := make(map[string][]response_models.SettingResponse)
	for i := range settings {
		category := settings[i].Category
		grouped[category] = append(grouped[category], response_models.ToSettingResponse(&settings[i]))
	}
	return grouped, nil
}

func (s *SettingService) ByCategory(ctx context.Context, category string) ([]response_models.SettingResponse, error) {
	settings, err := s.settingRepository.ListByCategory(ctx, strings.TrimSpace(category))
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return toSettingResponses(settings), nil
}

func (s *SettingService) Upsert(ctx context.Context, actor Actor, request request_models.UpsertSettingsRequest) ([]response_models.SettingResponse, error) {
	settings := make([]db_models.Setting, 0, len(request.Settings))
	seen := make(map[string]int, len(request.Settings))
	for _, item := range request.Settings {
		key := strings.TrimSpace(item.Key)
		if key == "" {
			return nil, utils.NewValidationError("key", "must not be empty")
		}
		category := strings.TrimSpace(item.Category)
		if category == "" {
			category = defaultSettingCategory
		}
		setting := db_models.Setting{
			Key:         key,
			Value:       item.Value,
			Category:    category,
			Description: utils.SanitizeText(item.Description),
		}
		// Last write for a repeated key wins.
		if idx, ok := seen[key]; ok {
			settings[idx] = setting
			continue
		}
		seen[key] = len(settings)
		settings = append(settings, setting)
	}

	if err := s.settingRepository.UpsertMany(ctx, settings); err != nil {
		return nil, utils.ErrDatabaseError
	}

	keys := make([]string, 0, len(settings))
	for _, setting := range settings {
		keys = append(keys, setting.Key)
	}
	s.audit.Record(ctx, actor, ActionUpdateSettings, EntitySetting, "", map[string]interface{}{"keys": keys})
	return toSettingResponses(settings), nil
}

func (s *SettingService) Delete(ctx context.Context, actor Actor, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return utils.ErrSettingNotFound
	}
	deleted, err := s.settingRepository.DeleteByKey(ctx, key)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if !deleted {
		return utils.ErrSettingNotFound
	}
	s.audit.Record(ctx, actor, ActionDelete, EntitySetting, key, nil)
	return nil
}

type settingsExport struct {
	Settings map[string][]response_models.SettingResponse `yaml:"settings"`
}

// ExportYAML renders every setting grouped by category.
func (s *SettingService) ExportYAML(ctx context.Context) ([]byte, error) {
	grouped, err := s.Grouped(ctx)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(settingsExport{Settings: grouped})
}
