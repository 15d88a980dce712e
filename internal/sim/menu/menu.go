package menu

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Station kinds a menu item can be produced at. COUNTER and SINK exist as
// station kinds but never appear as an item's production station.
const (
	StationOven    = "OVEN"
	StationStove   = "STOVE"
	StationPrep    = "PREP"
	StationCounter = "COUNTER"
	StationSink    = "SINK"
)

type Item struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Station     string `yaml:"station" json:"station"`
	CookSeconds int    `yaml:"cook_seconds" json:"cook_seconds"`
	Price       int    `yaml:"price" json:"price"`
}

type Menu struct {
	Items  []Item
	ByID   map[string]Item
	Digest string
}

func New(items []Item) (*Menu, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("menu: no items")
	}
	byID := make(map[string]Item, len(items))
	for _, it := range items {
		if it.ID == "" {
			return nil, fmt.Errorf("menu: item with empty id")
		}
		if _, dup := byID[it.ID]; dup {
			return nil, fmt.Errorf("menu: duplicate item id %s", it.ID)
		}
		switch it.Station {
		case StationOven, StationStove, StationPrep:
		default:
			return nil, fmt.Errorf("menu: item %s has bad station %q", it.ID, it.Station)
		}
		if it.CookSeconds <= 0 {
			return nil, fmt.Errorf("menu: item %s has non-positive cook time", it.ID)
		}
		byID[it.ID] = it
	}
	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	return &Menu{Items: sorted, ByID: byID, Digest: digest(sorted)}, nil
}

func digest(items []Item) string {
	b, _ := json.Marshal(items)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// Default is the built-in menu used when no menu file is supplied.
func Default() *Menu {
	m, err := New([]Item{
		{ID: "PIZZA", Name: "Margherita", Station: StationOven, CookSeconds: 20, Price: 12},
		{ID: "LASAGNA", Name: "Lasagna", Station: StationOven, CookSeconds: 25, Price: 14},
		{ID: "BURGER", Name: "Cheeseburger", Station: StationStove, CookSeconds: 12, Price: 9},
		{ID: "SOUP", Name: "Tomato soup", Station: StationStove, CookSeconds: 10, Price: 6},
		{ID: "SALAD", Name: "House salad", Station: StationPrep, CookSeconds: 8, Price: 7},
		{ID: "SUSHI", Name: "Sushi plate", Station: StationPrep, CookSeconds: 14, Price: 15},
	})
	if err != nil {
		panic(err)
	}
	return m
}

type menuFile struct {
	Items []Item `yaml:"items"`
}

func Load(path string) (*Menu, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var mf menuFile
	if err := yaml.Unmarshal(raw, &mf); err != nil {
		return nil, fmt.Errorf("menu.yaml: %w", err)
	}
	return New(mf.Items)
}

func (m *Menu) RandomItem(r *rand.Rand) Item {
	return m.Items[r.Intn(len(m.Items))]
}

// CookTicks converts an item's cook time to ticks at the given tick rate.
func (m *Menu) CookTicks(itemID string, tickRateHz int) int {
	it, ok := m.ByID[itemID]
	if !ok {
		return 0
	}
	t := it.CookSeconds * tickRateHz
	if t < 1 {
		t = 1
	}
	return t
}

type CompletionResult struct {
	Success bool
	Bonus   float64
}

// CompleteOrder scores a delivery. Success requires the right item in an
// edible state. The speed bonus rewards service within cook time plus a
// grace window; slow-but-correct deliveries succeed with no bonus.
func (m *Menu) CompleteOrder(orderedID, deliveredID string, burnt bool, serviceTicks, graceTicks, tickRateHz int) CompletionResult {
	if orderedID != deliveredID || burnt {
		return CompletionResult{}
	}
	res := CompletionResult{Success: true}
	fast := m.CookTicks(orderedID, tickRateHz) + graceTicks
	if serviceTicks <= fast {
		res.Bonus = 10
	} else if serviceTicks <= 2*fast {
		res.Bonus = 4
	}
	return res
}
