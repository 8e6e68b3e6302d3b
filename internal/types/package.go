package types

import "fmt"

// InstalledRepo is the repository id carried by packages read from the
// RPM database.
const InstalledRepo = "installed"

// Package is a concrete installable or installed unit as reported by the
// package engine.
type Package struct {
	Name     string
	Epoch    int
	Version  string
	Release  string
	Arch     string
	Repo     string
	Provides []string

	// Location is the package file path relative to the repository base
	// URL. Empty for installed packages.
	Location     string
	Checksum     string
	ChecksumType string

	// Requirement is only set on placeholders for unresolved requests.
	Requirement string
}

func (p Package) EVR() EVR {
	return EVR{Epoch: p.Epoch, Version: p.Version, Release: p.Release}
}

func (p Package) Installed() bool {
	return p.Repo == InstalledRepo
}

// NEVRA returns the name-epoch:version-release.arch identity of the package.
func (p Package) NEVRA() string {
	return fmt.Sprintf("%s-%d:%s-%s.%s", p.Name, p.Epoch, p.Version, p.Release, p.Arch)
}

// Spec returns the name-version-release.arch form accepted by rpm -e.
func (p Package) Spec() string {
	return fmt.Sprintf("%s-%s-%s.%s", p.Name, p.Version, p.Release, p.Arch)
}

func (p Package) String() string {
	return p.NEVRA()
}

// Placeholder builds the synthetic package that stands in for a requirement
// the engine could not resolve.
func Placeholder(name string, requirement string) Package {
	return Package{Name: name, Requirement: requirement}
}

// PackageLists is the engine's current view of packages per source.
type PackageLists struct {
	Installed []Package
	Available []Package
	Extras    []Package
	Reinstall []Package
}

// All returns every package across the sources, duplicates included.
func (l PackageLists) All() []Package {
	out := make([]Package, 0, len(l.Installed)+len(l.Available)+len(l.Extras)+len(l.Reinstall))
	out = append(out, l.Installed...)
	out = append(out, l.Available...)
	out = append(out, l.Extras...)
	out = append(out, l.Reinstall...)
	return out
}
