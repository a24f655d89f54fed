package storage

import (
	"fmt"
	"sort"
	"strings"

	"github.com/RobertPaulig/SpectralPhysics-Lab/material"
	"github.com/RobertPaulig/SpectralPhysics-Lab/spectrum"
)

// SaveHealthProfile archives a health profile: a "channels" text member
// listing the channel names, one per line in sorted order, and per channel
// the members "<name>_omega.npy" and "<name>_power.npy".
func SaveHealthProfile(path string, p *material.HealthProfile) error {
	names := make([]string, 0, len(p.Signatures))
	for name := range p.Signatures {
		names = append(names, name)
	}
	sort.Strings(names)

	a, err := newArchiveWriter(path)
	if err != nil {
		return fmt.Errorf("storage: saving health profile %s: %w", path, err)
	}
	fail := func(err error) error {
		a.Close()
		return fmt.Errorf("storage: saving health profile %s: %w", path, err)
	}

	if err := a.putText("channels", strings.Join(names, "\n")); err != nil {
		return fail(err)
	}
	for _, name := range names {
		ref := p.Signatures[name].Reference
		if err := a.putArray(name+"_omega", ref.Omega); err != nil {
			return fail(err)
		}
		if err := a.putArray(name+"_power", ref.Power); err != nil {
			return fail(err)
		}
	}
	return a.Close()
}

// LoadHealthProfile reads an archive written by SaveHealthProfile.
func LoadHealthProfile(path string) (*material.HealthProfile, error) {
	a, err := openArchive(path)
	if err != nil {
		return nil, fmt.Errorf("%w: health profile %s: %v", ErrCannotLoad, path, err)
	}
	defer a.Close()

	listing, err := a.getText("channels")
	if err != nil {
		return nil, fmt.Errorf("%w: health profile %s: %v", ErrCannotLoad, path, err)
	}

	signatures := make(map[string]*material.Signature)
	for _, name := range strings.Split(listing, "\n") {
		if name == "" {
			continue
		}
		var omega, power []float64
		if err := a.getArray(name+"_omega", &omega); err != nil {
			return nil, fmt.Errorf("%w: health profile %s: %v", ErrCannotLoad, path, err)
		}
		if err := a.getArray(name+"_power", &power); err != nil {
			return nil, fmt.Errorf("%w: health profile %s: %v", ErrCannotLoad, path, err)
		}
		ref, err := spectrum.New(omega, power)
		if err != nil {
			return nil, fmt.Errorf("%w: health profile %s: %v", ErrCannotLoad, path, err)
		}
		signatures[name] = material.NewSignature(ref)
	}
	return &material.HealthProfile{Signatures: signatures}, nil
}
