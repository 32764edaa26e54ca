package dto

import (
	albumDto "folio/internal/domains/album/model/dto"
	blogDto "folio/internal/domains/blog/model/dto"
	imageDto "folio/internal/domains/image/model/dto"
	settingDto "folio/internal/domains/setting/model/dto"
	testimonialDto "folio/internal/domains/testimonial/model/dto"
)

const (
	SettingSiteTitle            = "site_title"
	SettingSiteDescription      = "site_description"
	SettingHeroTitle            = "hero_title"
	SettingHeroSubtitle         = "hero_subtitle"
	SettingContactEmail         = "contact_email"
	SettingContactPhone         = "contact_phone"
	SettingSocialInstagram      = "social_instagram"
	SettingSocialFacebook       = "social_facebook"
	SettingStatsPhotosTaken     = "stats_photos_taken"
	SettingStatsHappyClients    = "stats_happy_clients"
	SettingStatsYearsExperience = "stats_years_experience"
	SettingStatsAwardsWon       = "stats_awards_won"
)

const (
	DefaultPhotosTaken     = "10K+"
	DefaultHappyClients    = "500+"
	DefaultYearsExperience = "5+"
	DefaultAwardsWon       = "25+"
)

// SettingKeys are the settings exposed on the homepage.
var SettingKeys = []string{
	SettingSiteTitle,
	SettingSiteDescription,
	SettingHeroTitle,
	SettingHeroSubtitle,
	SettingContactEmail,
	SettingContactPhone,
	SettingSocialInstagram,
	SettingSocialFacebook,
	SettingStatsPhotosTaken,
	SettingStatsHappyClients,
	SettingStatsYearsExperience,
	SettingStatsAwardsWon,
}

type Stats struct {
	PhotosTaken     string `json:"photos_taken"`
	HappyClients    string `json:"happy_clients"`
	YearsExperience string `json:"years_experience"`
	AwardsWon       string `json:"awards_won"`
}

func (s *Stats) FromSettings(settings settingDto.Settings) {
	s.PhotosTaken = valueOr(settings[SettingStatsPhotosTaken], DefaultPhotosTaken)
	s.HappyClients = valueOr(settings[SettingStatsHappyClients], DefaultHappyClients)
	s.YearsExperience = valueOr(settings[SettingStatsYearsExperience], DefaultYearsExperience)
	s.AwardsWon = valueOr(settings[SettingStatsAwardsWon], DefaultAwardsWon)
}

type HomepageResponse struct {
	HeroImages     []imageDto.ImageResponse             `json:"hero_images"`
	FeaturedAlbums []albumDto.AlbumResponse             `json:"featured_albums"`
	RecentPosts    []blogDto.PostSummary                `json:"recent_posts"`
	Testimonials   []testimonialDto.TestimonialResponse `json:"testimonials"`
	Settings       settingDto.Settings                  `json:"settings"`
	Stats          Stats                                `json:"stats"`
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}
