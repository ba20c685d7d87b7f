package split

import (
	"fmt"
	"os"

	"github.com/etnz/royalty"
	"gopkg.in/yaml.v3"
)

// Mode selects which side of a work's royalties is split.
type Mode string

const (
	Writer    Mode = "writer"
	Publisher Mode = "publisher"
)

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case Writer, Publisher:
		return m, nil
	}
	return "", fmt.Errorf("unknown mode %q (writer or publisher)", s)
}

// Bucket is the classification of a work.
type Bucket string

const (
	// writer mode
	Acquired    Bucket = "acquired"
	NotAcquired Bucket = "not-acquired"
	// publisher mode
	AcquiredControlled       Bucket = "acquired-controlled"
	AcquiredNotControlled    Bucket = "acquired-not-controlled"
	NotAcquiredControlled    Bucket = "not-acquired-controlled"
	NotAcquiredNotControlled Bucket = "not-acquired-not-controlled"
)

// Buckets returns the buckets of a mode, in report order.
func (m Mode) Buckets() []Bucket {
	if m == Writer {
		return []Bucket{Acquired, NotAcquired}
	}
	return []Bucket{AcquiredControlled, AcquiredNotControlled, NotAcquiredControlled, NotAcquiredNotControlled}
}

// Classify returns the bucket of a work.
func (m Mode) Classify(acquired, controlled bool) Bucket {
	switch {
	case m == Writer && acquired:
		return Acquired
	case m == Writer:
		return NotAcquired
	case acquired && controlled:
		return AcquiredControlled
	case acquired:
		return AcquiredNotControlled
	case controlled:
		return NotAcquiredControlled
	default:
		return NotAcquiredNotControlled
	}
}

// Cut is the percentage of a work's total paid to one payee.
type Cut struct {
	Payee   string          `yaml:"payee"`
	Percent royalty.Percent `yaml:"percent"`
}

// Table is the list of cuts applied to every work of a bucket. Each cut is a
// fraction of the same work total.
type Table []Cut

// Total returns the sum of the table percentages.
func (t Table) Total() royalty.Percent {
	var total royalty.Percent
	for _, c := range t {
		total += c.Percent
	}
	return total
}

// Shares are the base percentages the default tables are derived from.
type Shares struct {
	Writer         royalty.Percent `yaml:"writer"`
	NNCWriter      royalty.Percent `yaml:"nnc_writer"`
	PublisherTotal royalty.Percent `yaml:"publisher_total"`
	NNCPublisher   royalty.Percent `yaml:"nnc_publisher"`
	PublisherAdmin royalty.Percent `yaml:"publisher_admin"`
	NNCAdmin       royalty.Percent `yaml:"nnc_admin"`
}

// DefaultShares are the shares used when none are configured.
var DefaultShares = Shares{
	Writer:         50,
	NNCWriter:      50,
	PublisherTotal: 50,
	NNCPublisher:   50,
	PublisherAdmin: 60,
	NNCAdmin:       40,
}

// Config is the share configuration of an allocation.
type Config struct {
	Mode      Mode   `yaml:"mode"`
	Writer    string `yaml:"writer"`    // writer name used in payee labels
	Publisher string `yaml:"publisher"` // publisher name used in payee labels
	Shares    Shares `yaml:"shares"`
	// Buckets overrides the tables derived from Shares.
	Buckets map[Bucket]Table `yaml:"buckets"`
}

// DefaultConfig returns the configuration of a mode with the default shares.
func DefaultConfig(mode Mode) Config {
	return Config{Mode: mode, Writer: "Writer", Publisher: "Publisher", Shares: DefaultShares}
}

// LoadConfig reads a YAML configuration. Missing values keep their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("cannot read split configuration: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses a YAML configuration. Missing values keep their defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig(Writer)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid split configuration: %w", err)
	}
	if _, err := ParseMode(string(cfg.Mode)); err != nil {
		return Config{}, err
	}
	valid := make(map[Bucket]bool)
	for _, b := range cfg.Mode.Buckets() {
		valid[b] = true
	}
	for b := range cfg.Buckets {
		if !valid[b] {
			return Config{}, fmt.Errorf("bucket %q is not used in %s mode", b, cfg.Mode)
		}
	}
	return cfg, nil
}

// Table returns the cuts of a bucket.
func (c Config) Table(b Bucket) Table {
	if t, ok := c.Buckets[b]; ok {
		return t
	}
	s := c.Shares
	writer := c.Writer + " (Writer)"
	publisher := c.Publisher + " (Publisher)"
	switch b {
	case Acquired:
		return Table{{writer, s.Writer}, {"NNC (Writer)", s.NNCWriter}}
	case NotAcquired:
		return Table{{"NNC (Writer)", 100}}
	case AcquiredControlled, AcquiredNotControlled:
		return Table{
			{publisher, s.PublisherTotal.Of(s.PublisherAdmin)},
			{"NNC (Publisher)", s.NNCPublisher},
			{"Fee", s.PublisherTotal.Of(s.NNCAdmin)},
		}
	case NotAcquiredControlled, NotAcquiredNotControlled:
		return Table{{publisher, s.PublisherAdmin}, {"NNC (Admin)", s.NNCAdmin}}
	}
	return nil
}

// Warning is a configuration inconsistency. It does not stop the allocation.
type Warning struct {
	Subject string
	Total   royalty.Percent
}

func (w Warning) String() string {
	return fmt.Sprintf("%s sum to %v, want 100.00%%", w.Subject, w.Total)
}

// Validate checks that the shares of the mode and the tables of every bucket
// sum to 100%.
func (c Config) Validate() []Warning {
	var ws []Warning
	check := func(subject string, ps ...royalty.Percent) {
		if t := royalty.Total(ps...); !t.Equal(100) {
			ws = append(ws, Warning{Subject: subject, Total: t})
		}
	}
	s := c.Shares
	if c.Mode == Writer {
		check("writer and nnc_writer shares", s.Writer, s.NNCWriter)
	} else {
		check("publisher_total and nnc_publisher shares", s.PublisherTotal, s.NNCPublisher)
		check("publisher_admin and nnc_admin shares", s.PublisherAdmin, s.NNCAdmin)
	}
	for _, b := range c.Mode.Buckets() {
		check(fmt.Sprintf("%s percentages", b), c.Table(b).Total())
	}
	return ws
}
