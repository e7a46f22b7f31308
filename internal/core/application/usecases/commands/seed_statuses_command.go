package commands

import (
	"errors"
	"fmt"
	"strings"

	"repairdesk/internal/core/domain/model/status"
	"repairdesk/internal/pkg/errs"
	"repairdesk/internal/pkg/guard"
)

var ErrSeedStatusesCommandIsNotConstructed = errors.New(
	"SeedStatusesCommand must be created via NewSeedStatusesCommand constructor",
)

// StatusSeed describes a status by name. Allow-lists reference other seeds by name.
type StatusSeed struct {
	Name     string
	Order    int
	Color    string
	Icon     string
	Flags    status.Flags
	Next     []string
	Previous []string
}

// SeedStatusesCommand carries the default workflow installed on an empty registry.
type SeedStatusesCommand struct {
	seeds []StatusSeed

	guard guard.ConstructorGuard
}

// NewSeedStatusesCommand checks that seed names are present and unique and that
// every allow-list entry names another seed.
func NewSeedStatusesCommand(seeds []StatusSeed) (SeedStatusesCommand, error) {
	names := make(map[string]struct{}, len(seeds))
	var problems []error
	for _, seed := range seeds {
		name := strings.TrimSpace(seed.Name)
		if name == "" {
			problems = append(problems, errs.NewValueIsRequiredError("name"))
			continue
		}
		if _, dup := names[name]; dup {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("name", fmt.Errorf("%q is listed twice", name)))
		}
		names[name] = struct{}{}
	}
	for _, seed := range seeds {
		for _, ref := range append(append([]string(nil), seed.Next...), seed.Previous...) {
			if _, ok := names[strings.TrimSpace(ref)]; !ok {
				problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
					"allowedStatuses",
					fmt.Errorf("%q references unknown status %q", seed.Name, ref),
				))
			}
		}
	}
	if err := errors.Join(problems...); err != nil {
		return SeedStatusesCommand{}, err
	}

	return SeedStatusesCommand{
		seeds: append([]StatusSeed(nil), seeds...),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SeedStatusesCommand) Validate() error {
	return c.guard.Validate(ErrSeedStatusesCommandIsNotConstructed)
}

func (c SeedStatusesCommand) Seeds() []StatusSeed {
	return append([]StatusSeed(nil), c.seeds...)
}
