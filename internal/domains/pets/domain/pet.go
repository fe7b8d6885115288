package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyName    = errors.New("pet name is required")
	ErrEmptySpecies = errors.New("pet species is required")
	ErrNoOwner      = errors.New("pet owner is required")
)

// Pet is a directory entry for an animal under a pet owner's account.
type Pet struct {
	ID      int64
	OwnerID int64
	Name    string
	Species string
	Breed   string
}

// NewPet builds a pet ensuring required invariants.
func NewPet(id, ownerID int64, name, species string) (*Pet, error) {
	pet := &Pet{ID: id}
	if err := pet.SetOwner(ownerID); err != nil {
		return nil, err
	}
	if err := pet.SetName(name); err != nil {
		return nil, err
	}
	if err := pet.SetSpecies(species); err != nil {
		return nil, err
	}
	return pet, nil
}

// SetOwner validates the owning account reference.
func (p *Pet) SetOwner(ownerID int64) error {
	if ownerID <= 0 {
		return ErrNoOwner
	}
	p.OwnerID = ownerID
	return nil
}

// SetName trims and validates the pet name.
func (p *Pet) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

// SetSpecies trims and validates the species.
func (p *Pet) SetSpecies(species string) error {
	species = strings.TrimSpace(species)
	if species == "" {
		return ErrEmptySpecies
	}
	p.Species = species
	return nil
}

// Validate re-applies core invariants for persistence.
func (p *Pet) Validate() error {
	if err := p.SetOwner(p.OwnerID); err != nil {
		return err
	}
	if err := p.SetName(p.Name); err != nil {
		return err
	}
	return p.SetSpecies(p.Species)
}
