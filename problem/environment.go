// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package problem

import "fmt"

// This file holds environmental conditions: properties of the build
// machine or session rather than of the package being built. Six of
// them are "is_global" — they should win a tie-break against a more specific
// match in the same window, since an out-of-space build almost always
// also trips a handful of more specific-looking symptoms downstream.

func init() {
	register("no-space-on-device", true, func() Problem { return &NoSpaceOnDevice{} })
	register("chroot-not-found", true, func() Problem { return &ChrootNotFound{} })
	register("unknown-certificate-authority", true, func() Problem { return &UnknownCertificateAuthority{} })
	register("inactive-killed", true, func() Problem { return &InactiveKilled{} })
	register("cancelled", true, func() Problem { return &Cancelled{} })
	register("xdg-runtime-dir-not-set", false, func() Problem { return &XDGRunTimeNotSet{} })
	register("missing-pause-credentials", false, func() Problem { return &MissingPauseCredentials{} })
	register("invalid-current-user", false, func() Problem { return &InvalidCurrentUser{} })
	register("directory-non-existant", false, func() Problem { return &DirectoryNonExistant{} })
	register("architecture-not-in-list", false, func() Problem { return &ArchitectureNotInList{} })
	register("insufficient-disk-space", true, func() Problem { return &InsufficientDiskSpace{} })
	register("image-magick-delegate-missing", false, func() Problem { return &ImageMagickDelegateMissing{} })
	register("unsupported-pytest-arguments", false, func() Problem { return &UnsupportedPytestArguments{} })
	register("unsupported-pytest-config-option", false, func() Problem { return &UnsupportedPytestConfigOption{} })
}

// NoSpaceOnDevice is the canonical global kind: it must win the scan
// tie-break whenever both it and a more specific matcher fire in the
// same window, because running out of disk produces a flood of
// unrelated-looking symptoms afterward.
type NoSpaceOnDevice struct{}

func (p *NoSpaceOnDevice) Kind() string   { return "no-space-on-device" }
func (p *NoSpaceOnDevice) IsGlobal() bool { return true }
func (p *NoSpaceOnDevice) String() string { return "no space left on device" }

type ChrootNotFound struct {
	Chroot string `json:"chroot"`
}

func (p *ChrootNotFound) Kind() string   { return "chroot-not-found" }
func (p *ChrootNotFound) IsGlobal() bool { return true }
func (p *ChrootNotFound) String() string { return fmt.Sprintf("chroot not found: %s", p.Chroot) }

type UnknownCertificateAuthority struct {
	URL string `json:"url"`
}

func (p *UnknownCertificateAuthority) Kind() string   { return "unknown-certificate-authority" }
func (p *UnknownCertificateAuthority) IsGlobal() bool { return true }
func (p *UnknownCertificateAuthority) String() string {
	return fmt.Sprintf("unknown certificate authority for %s", p.URL)
}

type InactiveKilled struct {
	Minutes int `json:"minutes"`
}

func (p *InactiveKilled) Kind() string   { return "inactive-killed" }
func (p *InactiveKilled) IsGlobal() bool { return true }
func (p *InactiveKilled) String() string {
	return fmt.Sprintf("killed after %d minutes of inactivity", p.Minutes)
}

type Cancelled struct{}

func (p *Cancelled) Kind() string   { return "cancelled" }
func (p *Cancelled) IsGlobal() bool { return true }
func (p *Cancelled) String() string { return "build cancelled" }

type XDGRunTimeNotSet struct{}

func (p *XDGRunTimeNotSet) Kind() string   { return "xdg-runtime-dir-not-set" }
func (p *XDGRunTimeNotSet) IsGlobal() bool { return false }
func (p *XDGRunTimeNotSet) String() string { return "XDG_RUNTIME_DIR is not set" }

type MissingPauseCredentials struct{}

func (p *MissingPauseCredentials) Kind() string   { return "missing-pause-credentials" }
func (p *MissingPauseCredentials) IsGlobal() bool { return false }
func (p *MissingPauseCredentials) String() string { return "missing PAUSE credentials" }

type InvalidCurrentUser struct {
	User string `json:"user"`
}

func (p *InvalidCurrentUser) Kind() string   { return "invalid-current-user" }
func (p *InvalidCurrentUser) IsGlobal() bool { return false }
func (p *InvalidCurrentUser) String() string {
	return fmt.Sprintf("invalid current user: %s", p.User)
}

type DirectoryNonExistant struct {
	Path string `json:"path"`
}

func (p *DirectoryNonExistant) Kind() string   { return "directory-non-existant" }
func (p *DirectoryNonExistant) IsGlobal() bool { return false }
func (p *DirectoryNonExistant) String() string {
	return fmt.Sprintf("directory does not exist: %s", p.Path)
}

type ArchitectureNotInList struct {
	Arch     string   `json:"arch"`
	ArchList []string `json:"arch_list"`
}

func (p *ArchitectureNotInList) Kind() string   { return "architecture-not-in-list" }
func (p *ArchitectureNotInList) IsGlobal() bool { return false }
func (p *ArchitectureNotInList) String() string {
	return fmt.Sprintf("architecture %s not in list %v", p.Arch, p.ArchList)
}

type InsufficientDiskSpace struct {
	Needed int64 `json:"needed"`
	Free   int64 `json:"free"`
}

func (p *InsufficientDiskSpace) Kind() string   { return "insufficient-disk-space" }
func (p *InsufficientDiskSpace) IsGlobal() bool { return true }
func (p *InsufficientDiskSpace) String() string {
	return fmt.Sprintf("insufficient disk space: needed %d KiB, free %d KiB", p.Needed, p.Free)
}

type ImageMagickDelegateMissing struct {
	Delegate string `json:"delegate"`
}

func (p *ImageMagickDelegateMissing) Kind() string   { return "image-magick-delegate-missing" }
func (p *ImageMagickDelegateMissing) IsGlobal() bool { return false }
func (p *ImageMagickDelegateMissing) String() string {
	return fmt.Sprintf("missing ImageMagick delegate: %s", p.Delegate)
}

type UnsupportedPytestArguments struct {
	Args []string `json:"args"`
}

func (p *UnsupportedPytestArguments) Kind() string   { return "unsupported-pytest-arguments" }
func (p *UnsupportedPytestArguments) IsGlobal() bool { return false }
func (p *UnsupportedPytestArguments) String() string {
	return fmt.Sprintf("unsupported pytest arguments: %v", p.Args)
}

type UnsupportedPytestConfigOption struct {
	Name string `json:"name"`
}

func (p *UnsupportedPytestConfigOption) Kind() string   { return "unsupported-pytest-config-option" }
func (p *UnsupportedPytestConfigOption) IsGlobal() bool { return false }
func (p *UnsupportedPytestConfigOption) String() string {
	return fmt.Sprintf("unsupported pytest config option: %s", p.Name)
}
