package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// ChipColor is one configured color: how many chips exist and, when set,
// what each chip is worth. Value 0 means "to be optimized".
type ChipColor struct {
	Name  string
	Count int
	Value float64
}

// PokerConfig is a parsed game configuration. ChipColors keeps file order.
type PokerConfig struct {
	BuyInPerPerson float64
	NumPlayers     int
	ChipColors     []ChipColor
}

// LoadConfig reads a configuration file. The extension picks the format:
// .json is parsed with gjson, everything else as YAML.
func LoadConfig(path string) (*PokerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg *PokerConfig
	if strings.EqualFold(filepath.Ext(path), ".json") {
		cfg, err = parseJSONConfig(data)
	} else {
		cfg, err = parseYAMLConfig(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ── YAML ────────────────────────────────────────────────────────────

// parseYAMLConfig walks the document as nodes rather than maps so the
// chip_colors order survives.
func parseYAMLConfig(data []byte) (*PokerConfig, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("empty configuration")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("configuration root must be a mapping")
	}

	cfg := &PokerConfig{}
	seen := map[string]bool{}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		seen[key.Value] = true
		switch key.Value {
		case "buy_in_per_person":
			if err := val.Decode(&cfg.BuyInPerPerson); err != nil {
				return nil, fmt.Errorf("buy_in_per_person: %w", err)
			}
		case "num_players":
			if err := val.Decode(&cfg.NumPlayers); err != nil {
				return nil, fmt.Errorf("num_players: %w", err)
			}
		case "chip_colors":
			colors, err := parseYAMLColors(val)
			if err != nil {
				return nil, err
			}
			cfg.ChipColors = colors
		}
	}
	for _, field := range []string{"buy_in_per_person", "num_players", "chip_colors"} {
		if !seen[field] {
			return nil, fmt.Errorf("missing required field: %s", field)
		}
	}
	return cfg, nil
}

func parseYAMLColors(node *yaml.Node) ([]ChipColor, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("chip_colors must be a mapping")
	}
	var colors []ChipColor
	for i := 0; i+1 < len(node.Content); i += 2 {
		name, val := node.Content[i].Value, node.Content[i+1]
		cc := ChipColor{Name: name}
		switch val.Kind {
		case yaml.ScalarNode:
			// legacy form: just a count
			if err := val.Decode(&cc.Count); err != nil {
				return nil, fmt.Errorf("chip_colors.%s: %w", name, err)
			}
		case yaml.MappingNode:
			var entry struct {
				Count int      `yaml:"count"`
				Value *float64 `yaml:"value"`
			}
			if err := val.Decode(&entry); err != nil {
				return nil, fmt.Errorf("chip_colors.%s: %w", name, err)
			}
			cc.Count = entry.Count
			if entry.Value != nil {
				cc.Value = *entry.Value
			}
		default:
			return nil, fmt.Errorf("chip_colors.%s: expected a count or a count/value mapping", name)
		}
		colors = append(colors, cc)
	}
	return colors, nil
}

// ── JSON ────────────────────────────────────────────────────────────

func parseJSONConfig(data []byte) (*PokerConfig, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON")
	}
	root := gjson.ParseBytes(data)
	for _, field := range []string{"buy_in_per_person", "num_players", "chip_colors"} {
		if !root.Get(field).Exists() {
			return nil, fmt.Errorf("missing required field: %s", field)
		}
	}

	cfg := &PokerConfig{
		BuyInPerPerson: root.Get("buy_in_per_person").Float(),
		NumPlayers:     int(root.Get("num_players").Int()),
	}

	var parseErr error
	root.Get("chip_colors").ForEach(func(key, value gjson.Result) bool {
		cc := ChipColor{Name: key.String()}
		switch {
		case value.Type == gjson.Number:
			cc.Count = int(value.Int())
		case value.IsObject():
			cc.Count = int(value.Get("count").Int())
			cc.Value = value.Get("value").Float()
		default:
			parseErr = fmt.Errorf("chip_colors.%s: expected a count or a count/value object", key.String())
			return false
		}
		cfg.ChipColors = append(cfg.ChipColors, cc)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return cfg, nil
}

// ── Validation and accessors ────────────────────────────────────────

func (c *PokerConfig) validate() error {
	if c.BuyInPerPerson <= 0 {
		return fmt.Errorf("buy_in_per_person must be positive, got %v", c.BuyInPerPerson)
	}
	if c.NumPlayers <= 0 {
		return fmt.Errorf("num_players must be positive, got %d", c.NumPlayers)
	}
	if len(c.ChipColors) == 0 {
		return fmt.Errorf("chip_colors must not be empty")
	}
	for _, cc := range c.ChipColors {
		if cc.Count < 0 {
			return fmt.Errorf("chip count for %s must be non-negative, got %d", cc.Name, cc.Count)
		}
		if cc.Value < 0 {
			return fmt.Errorf("chip value for %s must be positive, got %v", cc.Name, cc.Value)
		}
	}
	return nil
}

// ChipSet returns the inventory portion of the configuration, colors in
// file order.
func (c *PokerConfig) ChipSet() ChipSet {
	colors := make([]string, len(c.ChipColors))
	counts := make(map[string]int, len(c.ChipColors))
	for i, cc := range c.ChipColors {
		colors[i] = cc.Name
		counts[cc.Name] = cc.Count
	}
	return ChipSet{Colors: colors, Counts: counts}
}

// HasFixedValues reports whether every color carries an explicit value,
// which is what distribute mode requires.
func (c *PokerConfig) HasFixedValues() bool {
	for _, cc := range c.ChipColors {
		if cc.Value <= 0 {
			return false
		}
	}
	return len(c.ChipColors) > 0
}

// FixedValues returns the color->value map for distribute mode, or
// ErrMissingValues naming every color without one.
func (c *PokerConfig) FixedValues() (map[string]float64, error) {
	values := make(map[string]float64, len(c.ChipColors))
	var missing []string
	for _, cc := range c.ChipColors {
		if cc.Value <= 0 {
			missing = append(missing, cc.Name)
			continue
		}
		values[cc.Name] = cc.Value
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: %v (distribute mode needs a value for every color)", ErrMissingValues, missing)
	}
	return values, nil
}

// ── Saving and examples ─────────────────────────────────────────────

// SaveYAML writes the configuration back out, colors in their current
// order, using the legacy bare-count form for colors without a value.
func (c *PokerConfig) SaveYAML(path string) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	appendPair := func(m *yaml.Node, key string, val *yaml.Node) {
		m.Content = append(m.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key}, val)
	}
	scalarFloat := func(f float64) *yaml.Node {
		return &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatFloat(f, 'f', -1, 64)}
	}
	scalarInt := func(n int) *yaml.Node {
		return &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.Itoa(n)}
	}

	appendPair(root, "buy_in_per_person", scalarFloat(c.BuyInPerPerson))
	appendPair(root, "num_players", scalarInt(c.NumPlayers))
	colorsNode := &yaml.Node{Kind: yaml.MappingNode}
	for _, cc := range c.ChipColors {
		if cc.Value > 0 {
			entry := &yaml.Node{Kind: yaml.MappingNode}
			appendPair(entry, "count", scalarInt(cc.Count))
			appendPair(entry, "value", scalarFloat(cc.Value))
			appendPair(colorsNode, cc.Name, entry)
		} else {
			appendPair(colorsNode, cc.Name, scalarInt(cc.Count))
		}
	}
	appendPair(root, "chip_colors", colorsNode)

	data, err := yaml.Marshal(root)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ExampleConfig returns the starter configuration written by the
// create-example command. withValues pins a value to every color so the
// file works in distribute mode.
func ExampleConfig(withValues bool) *PokerConfig {
	cfg := &PokerConfig{
		BuyInPerPerson: 5.0,
		NumPlayers:     9,
		ChipColors: []ChipColor{
			{Name: "white", Count: 100},
			{Name: "red", Count: 100},
			{Name: "green", Count: 100},
			{Name: "black", Count: 100},
			{Name: "blue", Count: 100},
		},
	}
	if withValues {
		values := []float64{0.25, 0.10, 0.50, 0.05, 1.00}
		for i := range cfg.ChipColors {
			cfg.ChipColors[i].Value = values[i]
		}
	}
	return cfg
}
