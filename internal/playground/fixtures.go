package playground

import (
	"time"

	"github.com/collabhub/marketplace-api/internal/core/domain"
)

// fixtureUsers returns the seeded accounts: two creators and one brand,
// all with onboarding already completed.
func fixtureUsers() []domain.User {
	created := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

	return []domain.User{
		{
			ID:         "usr_creator_1",
			Identifier: "john.creator@example.com",
			Role:       domain.RoleCreator,
			Name:       "John Creator",
			Bio:        "Lifestyle content creator with 50K followers on Instagram",
			Niche:      "lifestyle",
			SocialAccounts: domain.SocialAccounts{
				Instagram: "@johncreator",
				TikTok:    "@johnc_lifestyle",
				YouTube:   "John Creator",
			},
			OnboardingCompleted: true,
			CreatedAt:           created,
			UpdatedAt:           created,
		},
		{
			ID:         "usr_creator_2",
			Identifier: "sarah.creator@example.com",
			Role:       domain.RoleCreator,
			Name:       "Sarah Creator",
			Bio:        "Food and travel content creator",
			Niche:      "food",
			SocialAccounts: domain.SocialAccounts{
				Instagram: "@sarahfoodie",
				TikTok:    "@sarahcooks",
			},
			OnboardingCompleted: true,
			CreatedAt:           created,
			UpdatedAt:           created,
		},
		{
			ID:                  "usr_brand_1",
			Identifier:          "marketing@fashionbrand.com",
			Role:                domain.RoleBrand,
			Name:                "Fashion Brand Co.",
			Description:         "Premium fashion and lifestyle brand",
			Industry:            "fashion",
			OnboardingCompleted: true,
			CreatedAt:           created,
			UpdatedAt:           created,
		},
	}
}
