package parser

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CategoryKeywords defines the vocabulary for one built-in category. Primary
// keywords score at full weight, secondary keywords at half weight. Weight
// reflects how distinctive the category's vocabulary is.
type CategoryKeywords struct {
	Tag       string   `yaml:"tag"`
	Primary   []string `yaml:"primary"`
	Secondary []string `yaml:"secondary"`
	Weight    float64  `yaml:"weight"`
}

// builtinKeywords is the default category vocabulary. The table is built once
// and never mutated; slice order is the deterministic tie-break order for
// equal scores.
var builtinKeywords = []CategoryKeywords{
	{
		Tag: "food",
		Primary: []string{
			"lunch", "dinner", "breakfast", "cafe", "restaurant",
			"eat", "ate", "eating", "pizza", "burger", "sushi", "coffee",
			"обед", "ужин", "завтрак", "кафе", "еда", "кофе", "meal",
		},
		Secondary: []string{"snack", "food"},
		Weight:    2.0,
	},
	{
		Tag: "transport",
		Primary: []string{
			"taxi", "uber", "yandex", "bus", "metro", "subway",
			"такси", "метро", "автобус", "яндекс", "ride",
		},
		Secondary: []string{"fuel", "gas", "petrol", "parking", "бензин", "паркинг"},
		Weight:    2.0,
	},
	{
		Tag: "groceries",
		Primary: []string{
			"grocery", "groceries", "market", "supermarket",
			"магазин", "продукты", "makro", "korzinka", "havas",
		},
		Secondary: []string{"store", "shop"},
		Weight:    1.8,
	},
	{
		Tag: "entertainment",
		Primary: []string{
			"movie", "cinema", "film", "game", "concert",
			"кино", "игра", "концерт",
		},
		Secondary: []string{"party", "bar", "club", "theater"},
		Weight:    1.5,
	},
	{
		Tag: "shopping",
		Primary: []string{
			"shopping", "clothes", "shoes", "bought",
			"одежда", "обувь", "купил",
		},
		Secondary: []string{"buy", "shirt", "pants", "dress", "покупка"},
		Weight:    1.2,
	},
	{
		Tag: "bills",
		Primary: []string{
			"electricity", "water", "internet", "phone", "rent",
			"электричество", "вода", "интернет", "телефон", "аренда",
		},
		Secondary: []string{"utility", "bill", "коммуналка"},
		Weight:    1.8,
	},
	{
		Tag: "healthcare",
		Primary: []string{
			"doctor", "hospital", "pharmacy", "medicine", "pills",
			"врач", "больница", "аптека", "лекарство",
		},
		Secondary: []string{"clinic", "dental", "health"},
		Weight:    1.5,
	},
}

// keywordPack is the on-disk format for user-supplied keyword extensions.
type keywordPack struct {
	Categories []CategoryKeywords `yaml:"categories"`
}

// LoadKeywordPack reads additional category keywords from a YAML file. Loaded
// categories are appended after the built-in table, so built-ins win ties.
func LoadKeywordPack(path string) ([]CategoryKeywords, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path comes from user config
	if err != nil {
		return nil, fmt.Errorf("failed to read keyword pack: %w", err)
	}

	var pack keywordPack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("failed to parse keyword pack: %w", err)
	}

	for i := range pack.Categories {
		if pack.Categories[i].Tag == "" {
			return nil, fmt.Errorf("keyword pack entry %d: tag is required", i)
		}
		if pack.Categories[i].Weight == 0 {
			pack.Categories[i].Weight = 1.5
		}
	}

	return pack.Categories, nil
}
