package dto

import (
	"folio/internal/domains/setting/model"
	gModel "folio/shared/model"
	"folio/shared/timezone"
	"sort"
)

// Settings maps setting keys to their values.
type Settings map[string]string

func (s Settings) FromModels(models []model.Setting) Settings {
	for _, m := range models {
		s[m.Key] = m.Value
	}

	return s
}

type UpsertSettingsRequest struct {
	Settings map[string]string `json:"settings" validate:"required,min=1,dive,keys,min=1,max=100,endkeys"`
}

// ToModels returns the rows in key order so that concurrent upserts lock rows consistently.
func (r *UpsertSettingsRequest) ToModels(user string) []model.Setting {
	keys := make([]string, 0, len(r.Settings))
	for key := range r.Settings {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	now := timezone.Now()
	settings := make([]model.Setting, len(keys))

	for i, key := range keys {
		settings[i] = model.Setting{
			Key:   key,
			Value: r.Settings[key],
			Metadata: gModel.Metadata{
				CreatedAt:  now,
				ModifiedAt: now,
				CreatedBy:  user,
				ModifiedBy: user,
			},
		}
	}

	return settings
}
