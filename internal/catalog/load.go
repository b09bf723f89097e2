package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/mondihair/MH-BookingService/pkg/types"
)

var (
	// ErrInvalidCatalog is returned when the catalog file fails validation
	ErrInvalidCatalog = errors.New("catalog: invalid catalog data")
)

// Staff ids are slugs: they end up inside slot-lock keys and URLs.
var staffIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// fileCatalog is the TOML shape of catalog.toml.
type fileCatalog struct {
	Services []fileService `toml:"service"`
	Staff    []fileStaff   `toml:"staff"`
}

type fileService struct {
	Name            string  `toml:"name"`
	Price           float64 `toml:"price"`
	DurationMinutes int     `toml:"duration_minutes"`
	Description     string  `toml:"description"`
}

type fileStaff struct {
	ID          string   `toml:"id"`
	Name        string   `toml:"name"`
	SlotMinutes int      `toml:"slot_minutes"`
	Services    []string `toml:"services"`
	// Per-day range lists as "HH:MM-HH:MM" strings.
	// A missing or empty day is closed.
	Week map[string][]string `toml:"week"`
}

// Load reads and validates the catalog snapshot from a TOML file.
func Load(path string) (*Catalog, error) {
	var raw fileCatalog
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrInvalidCatalog, path, err)
	}
	return build(raw)
}

func build(raw fileCatalog) (*Catalog, error) {
	c := &Catalog{
		staff:    make(map[string]*StaffMember),
		services: make(map[string]*Service),
	}

	if len(raw.Services) == 0 {
		return nil, fmt.Errorf("%w: no services defined", ErrInvalidCatalog)
	}
	if len(raw.Staff) == 0 {
		return nil, fmt.Errorf("%w: no staff defined", ErrInvalidCatalog)
	}

	for _, fs := range raw.Services {
		if fs.Name == "" {
			return nil, fmt.Errorf("%w: service with empty name", ErrInvalidCatalog)
		}
		if _, dup := c.services[fs.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate service %q", ErrInvalidCatalog, fs.Name)
		}
		if fs.Price < 0 {
			return nil, fmt.Errorf("%w: service %q has negative price", ErrInvalidCatalog, fs.Name)
		}
		if fs.DurationMinutes <= 0 {
			return nil, fmt.Errorf("%w: service %q has non-positive duration", ErrInvalidCatalog, fs.Name)
		}
		c.services[fs.Name] = &Service{
			Name:            fs.Name,
			Price:           fs.Price,
			DurationMinutes: fs.DurationMinutes,
			Description:     fs.Description,
		}
		c.serviceOrder = append(c.serviceOrder, fs.Name)
	}

	for _, fs := range raw.Staff {
		if !staffIDPattern.MatchString(fs.ID) {
			return nil, fmt.Errorf("%w: staff id %q is not a valid slug", ErrInvalidCatalog, fs.ID)
		}
		if _, dup := c.staff[fs.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate staff id %q", ErrInvalidCatalog, fs.ID)
		}
		if fs.Name == "" {
			return nil, fmt.Errorf("%w: staff %q has empty name", ErrInvalidCatalog, fs.ID)
		}
		if fs.SlotMinutes <= 0 {
			return nil, fmt.Errorf("%w: staff %q has non-positive slot granularity", ErrInvalidCatalog, fs.ID)
		}
		for _, svc := range fs.Services {
			if _, ok := c.services[svc]; !ok {
				return nil, fmt.Errorf("%w: staff %q offers unknown service %q", ErrInvalidCatalog, fs.ID, svc)
			}
		}

		week, err := buildWeek(fs.ID, fs.Week)
		if err != nil {
			return nil, err
		}

		c.staff[fs.ID] = &StaffMember{
			ID:          fs.ID,
			Name:        fs.Name,
			SlotMinutes: fs.SlotMinutes,
			Services:    fs.Services,
			Week:        week,
		}
		c.staffOrder = append(c.staffOrder, fs.ID)
	}

	return c, nil
}

func buildWeek(staffID string, days map[string][]string) (Week, error) {
	var week Week
	targets := map[string]*DaySchedule{
		"monday":    &week.Monday,
		"tuesday":   &week.Tuesday,
		"wednesday": &week.Wednesday,
		"thursday":  &week.Thursday,
		"friday":    &week.Friday,
		"saturday":  &week.Saturday,
		"sunday":    &week.Sunday,
	}

	for key := range days {
		if _, ok := targets[strings.ToLower(key)]; !ok {
			return Week{}, fmt.Errorf("%w: staff %q has unknown weekday %q", ErrInvalidCatalog, staffID, key)
		}
	}

	for name, target := range targets {
		ranges, ok := days[name]
		if !ok || len(ranges) == 0 {
			target.Closed = true
			continue
		}
		for _, spec := range ranges {
			r, err := parseRange(spec)
			if err != nil {
				return Week{}, fmt.Errorf("%w: staff %q %s: %v", ErrInvalidCatalog, staffID, name, err)
			}
			target.Ranges = append(target.Ranges, r)
		}
	}

	return week, nil
}

func parseRange(spec string) (TimeRange, error) {
	parts := strings.SplitN(spec, "-", 2)
	if len(parts) != 2 {
		return TimeRange{}, fmt.Errorf("range %q is not HH:MM-HH:MM", spec)
	}
	start, err := types.NewTimeStringFromString(strings.TrimSpace(parts[0]))
	if err != nil {
		return TimeRange{}, err
	}
	end, err := types.NewTimeStringFromString(strings.TrimSpace(parts[1]))
	if err != nil {
		return TimeRange{}, err
	}
	if !start.IsBefore(end) {
		return TimeRange{}, fmt.Errorf("range %q has start >= end", spec)
	}
	return TimeRange{Start: start, End: end}, nil
}
