// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package problem

import "fmt"

// This file holds the "missing dependency" family: anything a build
// failed to find, from a bare system command up to a versioned
// language package.

func init() {
	register("missing-command", false, func() Problem { return &MissingCommand{} })
	register("missing-command-or-build-file", false, func() Problem { return &MissingCommandOrBuildFile{} })
	register("not-executable-file", false, func() Problem { return &NotExecutableFile{} })
	register("missing-file", false, func() Problem { return &MissingFile{} })
	register("missing-build-file", false, func() Problem { return &MissingBuildFile{} })
	register("missing-configure", false, func() Problem { return &MissingConfigure{} })
	register("vcs-control-directory-needed", false, func() Problem { return &VCSControlDirectoryNeeded{} })
	register("missing-python-module", false, func() Problem { return &MissingPythonModule{} })
	register("missing-python-distribution", false, func() Problem { return &MissingPythonDistribution{} })
	register("missing-c-header", false, func() Problem { return &MissingCHeader{} })
	register("missing-pkg-config-package", false, func() Problem { return &MissingPkgConfig{} })
	register("missing-cmake-components", false, func() Problem { return &MissingCMakeComponents{} })
	register("missing-cmake-config", false, func() Problem { return &MissingCMakeConfig{} })
	register("cmake-files-missing", false, func() Problem { return &CMakeFilesMissing{} })
	register("cmake-exact-version-missing", false, func() Problem { return &CMakeNeedExactVersion{} })
	register("missing-perl-module", false, func() Problem { return &MissingPerlModule{} })
	register("missing-perl-file", false, func() Problem { return &MissingPerlFile{} })
	register("missing-perl-predeclared", false, func() Problem { return &MissingPerlPredeclared{} })
	register("missing-perl-distribution-file", false, func() Problem { return &MissingPerlDistributionFile{} })
	register("missing-perl-manifest", false, func() Problem { return &MissingPerlManifest{} })
	register("missing-haskell-module", false, func() Problem { return &MissingHaskellModule{} })
	register("missing-haskell-dependencies", false, func() Problem { return &MissingHaskellDependencies{} })
	register("missing-ruby-gem", false, func() Problem { return &MissingRubyGem{} })
	register("missing-ruby-file", false, func() Problem { return &MissingRubyFile{} })
	register("missing-r-package", false, func() Problem { return &MissingRPackage{} })
	register("missing-lua-module", false, func() Problem { return &MissingLuaModule{} })
	register("missing-ocaml-package", false, func() Problem { return &MissingOCamlPackage{} })
	register("missing-go-package", false, func() Problem { return &MissingGoPackage{} })
	register("missing-go-runtime", false, func() Problem { return &MissingGoRuntime{} })
	register("missing-go-mod-file", false, func() Problem { return &MissingGoModFile{} })
	register("outdated-go-mod-file", false, func() Problem { return &OutdatedGoModFile{} })
	register("missing-go-sum-entry", false, func() Problem { return &MissingGoSumEntry{} })
	register("missing-java-class", false, func() Problem { return &MissingJavaClass{} })
	register("missing-php-class", false, func() Problem { return &MissingPHPClass{} })
	register("missing-php-extension", false, func() Problem { return &MissingPHPExtension{} })
	register("missing-node-module", false, func() Problem { return &MissingNodeModule{} })
	register("missing-node-package", false, func() Problem { return &MissingNodePackage{} })
	register("missing-vala-package", false, func() Problem { return &MissingValaPackage{} })
	register("missing-qt", false, func() Problem { return &MissingQt{} })
	register("missing-qt-modules", false, func() Problem { return &MissingQtModules{} })
	register("missing-x11", false, func() Problem { return &MissingX11{} })
	register("missing-x-display", false, func() Problem { return &MissingXDisplay{} })
	register("missing-jdk-file", false, func() Problem { return &MissingJDKFile{} })
	register("missing-jdk", false, func() Problem { return &MissingJDK{} })
	register("missing-jre", false, func() Problem { return &MissingJRE{} })
	register("missing-jvm", false, func() Problem { return &MissingJVM{} })
	register("missing-javascript-runtime", false, func() Problem { return &MissingJavaScriptRuntime{} })
	register("missing-latex-file", false, func() Problem { return &MissingLatexFile{} })
	register("missing-fontspec", false, func() Problem { return &MissingFontspec{} })
	register("missing-cargo-crate", false, func() Problem { return &MissingCargoCrate{} })
	register("missing-introspection-typelib", false, func() Problem { return &MissingIntrospectionTypelib{} })
	register("missing-fortran-compiler", false, func() Problem { return &MissingFortranCompiler{} })
	register("missing-rust-compiler", false, func() Problem { return &MissingRustCompiler{} })
	register("missing-csharp-compiler", false, func() Problem { return &MissingCSharpCompiler{} })
	register("missing-assembler", false, func() Problem { return &MissingAssembler{} })
	register("missing-libtool", false, func() Problem { return &MissingLibtool{} })
	register("missing-library", false, func() Problem { return &MissingLibrary{} })
	register("missing-static-library", false, func() Problem { return &MissingStaticLibrary{} })
	register("missing-maven-artifacts", false, func() Problem { return &MissingMavenArtifacts{} })
	register("missing-vague-dependency", false, func() Problem { return &MissingVagueDependency{} })
	register("missing-gnulib-directory", false, func() Problem { return &MissingGnulibDirectory{} })
	register("missing-xml-entity", false, func() Problem { return &MissingXMLEntity{} })
	register("missing-secret-gpg-key", false, func() Problem { return &MissingSecretGPGKey{} })
	register("missing-git-identity", false, func() Problem { return &MissingGitIdentity{} })
	register("missing-pytest-fixture", false, func() Problem { return &MissingPytestFixture{} })
	register("missing-autoconf-macro", false, func() Problem { return &MissingAutoconfMacro{} })
	register("missing-automake-input", false, func() Problem { return &MissingAutomakeInput{} })
	register("missing-config-status-input", false, func() Problem { return &MissingConfigStatusInput{} })
	register("missing-gnome-common-dependency", false, func() Problem { return &MissingGnomeCommonDependency{} })
	register("gnome-common-missing", false, func() Problem { return &GnomeCommonMissing{} })
	register("missing-xfce-dependency", false, func() Problem { return &MissingXfceDependency{} })
	register("missing-postgresql-extension", false, func() Problem { return &MissingPostgresqlExtension{} })
	register("missing-debcargo-crate", false, func() Problem { return &MissingDebcargoCrate{} })
	register("ccache-error", false, func() Problem { return &CcacheError{} })
}

type MissingCommand struct {
	Command string `json:"command"`
}

func (p *MissingCommand) Kind() string   { return "missing-command" }
func (p *MissingCommand) IsGlobal() bool { return false }
func (p *MissingCommand) String() string { return fmt.Sprintf("missing command: %s", p.Command) }

type MissingCommandOrBuildFile struct {
	Filename string `json:"filename"`
}

func (p *MissingCommandOrBuildFile) Kind() string   { return "missing-command-or-build-file" }
func (p *MissingCommandOrBuildFile) IsGlobal() bool { return false }
func (p *MissingCommandOrBuildFile) String() string {
	return fmt.Sprintf("missing command or build file: %s", p.Filename)
}

type NotExecutableFile struct {
	Filename string `json:"filename"`
}

func (p *NotExecutableFile) Kind() string   { return "not-executable-file" }
func (p *NotExecutableFile) IsGlobal() bool { return false }
func (p *NotExecutableFile) String() string { return fmt.Sprintf("not executable: %s", p.Filename) }

type MissingFile struct {
	Path string `json:"path"`
}

func (p *MissingFile) Kind() string   { return "missing-file" }
func (p *MissingFile) IsGlobal() bool { return false }
func (p *MissingFile) String() string { return fmt.Sprintf("missing file: %s", p.Path) }

type MissingBuildFile struct {
	Filename string `json:"filename"`
}

func (p *MissingBuildFile) Kind() string   { return "missing-build-file" }
func (p *MissingBuildFile) IsGlobal() bool { return false }
func (p *MissingBuildFile) String() string {
	return fmt.Sprintf("missing build file: %s", p.Filename)
}

type MissingConfigure struct{}

func (p *MissingConfigure) Kind() string   { return "missing-configure" }
func (p *MissingConfigure) IsGlobal() bool { return false }
func (p *MissingConfigure) String() string { return "missing ./configure" }

type VCSControlDirectoryNeeded struct {
	Vcs []string `json:"vcs"`
}

func (p *VCSControlDirectoryNeeded) Kind() string   { return "vcs-control-directory-needed" }
func (p *VCSControlDirectoryNeeded) IsGlobal() bool { return false }
func (p *VCSControlDirectoryNeeded) String() string {
	return fmt.Sprintf("needs a %v control directory", p.Vcs)
}

type MissingPythonModule struct {
	Module         string  `json:"module"`
	PythonVersion  *string `json:"python_version,omitempty"`
	MinimumVersion *string `json:"minimum_version,omitempty"`
}

func (p *MissingPythonModule) Kind() string   { return "missing-python-module" }
func (p *MissingPythonModule) IsGlobal() bool { return false }
func (p *MissingPythonModule) String() string {
	return fmt.Sprintf("missing python module: %s", p.Module)
}

type MissingPythonDistribution struct {
	Distribution   string  `json:"distribution"`
	PythonVersion  *string `json:"python_version,omitempty"`
	MinimumVersion *string `json:"minimum_version,omitempty"`
}

func (p *MissingPythonDistribution) Kind() string   { return "missing-python-distribution" }
func (p *MissingPythonDistribution) IsGlobal() bool { return false }
func (p *MissingPythonDistribution) String() string {
	return fmt.Sprintf("missing python distribution: %s", p.Distribution)
}

type MissingCHeader struct {
	Header string `json:"header"`
}

func (p *MissingCHeader) Kind() string   { return "missing-c-header" }
func (p *MissingCHeader) IsGlobal() bool { return false }
func (p *MissingCHeader) String() string { return fmt.Sprintf("missing C header: %s", p.Header) }

type MissingPkgConfig struct {
	Module         string  `json:"module"`
	MinimumVersion *string `json:"minimum_version,omitempty"`
}

func (p *MissingPkgConfig) Kind() string   { return "missing-pkg-config-package" }
func (p *MissingPkgConfig) IsGlobal() bool { return false }
func (p *MissingPkgConfig) String() string {
	return fmt.Sprintf("missing pkg-config module: %s", p.Module)
}

type MissingCMakeComponents struct {
	Name       string   `json:"name"`
	Components []string `json:"components"`
}

func (p *MissingCMakeComponents) Kind() string   { return "missing-cmake-components" }
func (p *MissingCMakeComponents) IsGlobal() bool { return false }
func (p *MissingCMakeComponents) String() string {
	return fmt.Sprintf("missing CMake components from %s: %v", p.Name, p.Components)
}

type MissingCMakeConfig struct {
	Name    string  `json:"name"`
	Version *string `json:"version,omitempty"`
}

func (p *MissingCMakeConfig) Kind() string   { return "missing-cmake-config" }
func (p *MissingCMakeConfig) IsGlobal() bool { return false }
func (p *MissingCMakeConfig) String() string {
	return fmt.Sprintf("missing CMake package configuration for %s", p.Name)
}

type CMakeFilesMissing struct {
	Filenames []string `json:"filenames"`
	Version   *string  `json:"version,omitempty"`
}

func (p *CMakeFilesMissing) Kind() string   { return "cmake-files-missing" }
func (p *CMakeFilesMissing) IsGlobal() bool { return false }
func (p *CMakeFilesMissing) String() string {
	return fmt.Sprintf("missing CMake files: %v", p.Filenames)
}

type CMakeNeedExactVersion struct {
	Package        string `json:"package"`
	VersionFound   string `json:"version_found"`
	ExactVersion   string `json:"exact_version_needed"`
	Path           string `json:"path,omitempty"`
}

func (p *CMakeNeedExactVersion) Kind() string   { return "cmake-exact-version-missing" }
func (p *CMakeNeedExactVersion) IsGlobal() bool { return false }
func (p *CMakeNeedExactVersion) String() string {
	return fmt.Sprintf("%s needs exact version %s, found %s", p.Package, p.ExactVersion, p.VersionFound)
}

type MissingPerlModule struct {
	Filename       *string  `json:"filename,omitempty"`
	Module         string   `json:"module"`
	Inc            []string `json:"inc,omitempty"`
	MinimumVersion *string  `json:"minimum_version,omitempty"`
}

func (p *MissingPerlModule) Kind() string   { return "missing-perl-module" }
func (p *MissingPerlModule) IsGlobal() bool { return false }
func (p *MissingPerlModule) String() string {
	return fmt.Sprintf("missing perl module: %s", p.Module)
}

type MissingPerlFile struct {
	Filename string   `json:"filename"`
	Inc      []string `json:"inc,omitempty"`
}

func (p *MissingPerlFile) Kind() string   { return "missing-perl-file" }
func (p *MissingPerlFile) IsGlobal() bool { return false }
func (p *MissingPerlFile) String() string { return fmt.Sprintf("missing perl file: %s", p.Filename) }

type MissingPerlPredeclared struct {
	Name string `json:"name"`
}

func (p *MissingPerlPredeclared) Kind() string   { return "missing-perl-predeclared" }
func (p *MissingPerlPredeclared) IsGlobal() bool { return false }
func (p *MissingPerlPredeclared) String() string {
	return fmt.Sprintf("missing predeclared function: %s", p.Name)
}

type MissingPerlDistributionFile struct {
	Filename string `json:"filename"`
}

func (p *MissingPerlDistributionFile) Kind() string   { return "missing-perl-distribution-file" }
func (p *MissingPerlDistributionFile) IsGlobal() bool { return false }
func (p *MissingPerlDistributionFile) String() string {
	return fmt.Sprintf("missing perl distribution file: %s", p.Filename)
}

type MissingPerlManifest struct{}

func (p *MissingPerlManifest) Kind() string   { return "missing-perl-manifest" }
func (p *MissingPerlManifest) IsGlobal() bool { return false }
func (p *MissingPerlManifest) String() string { return "missing perl MANIFEST" }

type MissingHaskellModule struct {
	Module string `json:"module"`
}

func (p *MissingHaskellModule) Kind() string   { return "missing-haskell-module" }
func (p *MissingHaskellModule) IsGlobal() bool { return false }
func (p *MissingHaskellModule) String() string {
	return fmt.Sprintf("missing haskell module: %s", p.Module)
}

type MissingHaskellDependencies struct {
	Deps []string `json:"deps"`
}

func (p *MissingHaskellDependencies) Kind() string   { return "missing-haskell-dependencies" }
func (p *MissingHaskellDependencies) IsGlobal() bool { return false }
func (p *MissingHaskellDependencies) String() string {
	return fmt.Sprintf("missing haskell dependencies: %v", p.Deps)
}

type MissingRubyGem struct {
	Gem            string  `json:"gem"`
	MinimumVersion *string `json:"minimum_version,omitempty"`
}

func (p *MissingRubyGem) Kind() string   { return "missing-ruby-gem" }
func (p *MissingRubyGem) IsGlobal() bool { return false }
func (p *MissingRubyGem) String() string { return fmt.Sprintf("missing ruby gem: %s", p.Gem) }

type MissingRubyFile struct {
	Filename string `json:"filename"`
}

func (p *MissingRubyFile) Kind() string   { return "missing-ruby-file" }
func (p *MissingRubyFile) IsGlobal() bool { return false }
func (p *MissingRubyFile) String() string { return fmt.Sprintf("missing ruby file: %s", p.Filename) }

type MissingRPackage struct {
	Package        string  `json:"package"`
	MinimumVersion *string `json:"minimum_version,omitempty"`
}

func (p *MissingRPackage) Kind() string   { return "missing-r-package" }
func (p *MissingRPackage) IsGlobal() bool { return false }
func (p *MissingRPackage) String() string { return fmt.Sprintf("missing R package: %s", p.Package) }

type MissingLuaModule struct {
	Module string `json:"module"`
}

func (p *MissingLuaModule) Kind() string   { return "missing-lua-module" }
func (p *MissingLuaModule) IsGlobal() bool { return false }
func (p *MissingLuaModule) String() string { return fmt.Sprintf("missing lua module: %s", p.Module) }

type MissingOCamlPackage struct {
	Package string `json:"package"`
}

func (p *MissingOCamlPackage) Kind() string   { return "missing-ocaml-package" }
func (p *MissingOCamlPackage) IsGlobal() bool { return false }
func (p *MissingOCamlPackage) String() string {
	return fmt.Sprintf("missing OCaml package: %s", p.Package)
}

type MissingGoPackage struct {
	Package string `json:"package"`
}

func (p *MissingGoPackage) Kind() string   { return "missing-go-package" }
func (p *MissingGoPackage) IsGlobal() bool { return false }
func (p *MissingGoPackage) String() string { return fmt.Sprintf("missing Go package: %s", p.Package) }

type MissingGoRuntime struct{}

func (p *MissingGoRuntime) Kind() string   { return "missing-go-runtime" }
func (p *MissingGoRuntime) IsGlobal() bool { return false }
func (p *MissingGoRuntime) String() string { return "missing Go runtime" }

type MissingGoModFile struct{}

func (p *MissingGoModFile) Kind() string   { return "missing-go-mod-file" }
func (p *MissingGoModFile) IsGlobal() bool { return false }
func (p *MissingGoModFile) String() string { return "missing go.mod file" }

type OutdatedGoModFile struct{}

func (p *OutdatedGoModFile) Kind() string   { return "outdated-go-mod-file" }
func (p *OutdatedGoModFile) IsGlobal() bool { return false }
func (p *OutdatedGoModFile) String() string { return "outdated go.mod file" }

type MissingGoSumEntry struct {
	Package string `json:"package"`
	Version string `json:"version,omitempty"`
}

func (p *MissingGoSumEntry) Kind() string   { return "missing-go-sum-entry" }
func (p *MissingGoSumEntry) IsGlobal() bool { return false }
func (p *MissingGoSumEntry) String() string {
	return fmt.Sprintf("missing go.sum entry: %s", p.Package)
}

type MissingJavaClass struct {
	Classname string `json:"classname"`
}

func (p *MissingJavaClass) Kind() string   { return "missing-java-class" }
func (p *MissingJavaClass) IsGlobal() bool { return false }
func (p *MissingJavaClass) String() string {
	return fmt.Sprintf("missing Java class: %s", p.Classname)
}

type MissingPHPClass struct {
	Classname string `json:"classname"`
}

func (p *MissingPHPClass) Kind() string   { return "missing-php-class" }
func (p *MissingPHPClass) IsGlobal() bool { return false }
func (p *MissingPHPClass) String() string { return fmt.Sprintf("missing PHP class: %s", p.Classname) }

type MissingPHPExtension struct {
	Extension string `json:"extension"`
}

func (p *MissingPHPExtension) Kind() string   { return "missing-php-extension" }
func (p *MissingPHPExtension) IsGlobal() bool { return false }
func (p *MissingPHPExtension) String() string {
	return fmt.Sprintf("missing PHP extension: %s", p.Extension)
}

type MissingNodeModule struct {
	Module string `json:"module"`
}

func (p *MissingNodeModule) Kind() string   { return "missing-node-module" }
func (p *MissingNodeModule) IsGlobal() bool { return false }
func (p *MissingNodeModule) String() string {
	return fmt.Sprintf("missing node module: %s", p.Module)
}

type MissingNodePackage struct {
	Package string `json:"package"`
}

func (p *MissingNodePackage) Kind() string   { return "missing-node-package" }
func (p *MissingNodePackage) IsGlobal() bool { return false }
func (p *MissingNodePackage) String() string {
	return fmt.Sprintf("missing node package: %s", p.Package)
}

type MissingValaPackage struct {
	Package string `json:"package"`
}

func (p *MissingValaPackage) Kind() string   { return "missing-vala-package" }
func (p *MissingValaPackage) IsGlobal() bool { return false }
func (p *MissingValaPackage) String() string {
	return fmt.Sprintf("missing Vala package: %s", p.Package)
}

type MissingQt struct{}

func (p *MissingQt) Kind() string   { return "missing-qt" }
func (p *MissingQt) IsGlobal() bool { return false }
func (p *MissingQt) String() string { return "missing Qt" }

type MissingQtModules struct {
	Modules []string `json:"modules"`
}

func (p *MissingQtModules) Kind() string   { return "missing-qt-modules" }
func (p *MissingQtModules) IsGlobal() bool { return false }
func (p *MissingQtModules) String() string { return fmt.Sprintf("missing Qt modules: %v", p.Modules) }

type MissingX11 struct{}

func (p *MissingX11) Kind() string   { return "missing-x11" }
func (p *MissingX11) IsGlobal() bool { return false }
func (p *MissingX11) String() string { return "missing X11" }

type MissingXDisplay struct{}

func (p *MissingXDisplay) Kind() string   { return "missing-x-display" }
func (p *MissingXDisplay) IsGlobal() bool { return false }
func (p *MissingXDisplay) String() string { return "no X display" }

type MissingJDKFile struct {
	Jdkpath  string `json:"jdkpath"`
	Filename string `json:"filename"`
}

func (p *MissingJDKFile) Kind() string   { return "missing-jdk-file" }
func (p *MissingJDKFile) IsGlobal() bool { return false }
func (p *MissingJDKFile) String() string {
	return fmt.Sprintf("missing JDK file %s in %s", p.Filename, p.Jdkpath)
}

type MissingJDK struct {
	Jdkpath string `json:"jdkpath"`
}

func (p *MissingJDK) Kind() string   { return "missing-jdk" }
func (p *MissingJDK) IsGlobal() bool { return false }
func (p *MissingJDK) String() string { return fmt.Sprintf("missing JDK at %s", p.Jdkpath) }

type MissingJRE struct{}

func (p *MissingJRE) Kind() string   { return "missing-jre" }
func (p *MissingJRE) IsGlobal() bool { return false }
func (p *MissingJRE) String() string { return "missing JRE" }

type MissingJVM struct{}

func (p *MissingJVM) Kind() string   { return "missing-jvm" }
func (p *MissingJVM) IsGlobal() bool { return false }
func (p *MissingJVM) String() string { return "missing JVM" }

type MissingJavaScriptRuntime struct{}

func (p *MissingJavaScriptRuntime) Kind() string   { return "missing-javascript-runtime" }
func (p *MissingJavaScriptRuntime) IsGlobal() bool { return false }
func (p *MissingJavaScriptRuntime) String() string { return "missing JavaScript runtime" }

type MissingLatexFile struct {
	Filename string `json:"filename"`
}

func (p *MissingLatexFile) Kind() string   { return "missing-latex-file" }
func (p *MissingLatexFile) IsGlobal() bool { return false }
func (p *MissingLatexFile) String() string {
	return fmt.Sprintf("missing LaTeX file: %s", p.Filename)
}

type MissingFontspec struct {
	Fontspec string `json:"fontspec"`
}

func (p *MissingFontspec) Kind() string   { return "missing-fontspec" }
func (p *MissingFontspec) IsGlobal() bool { return false }
func (p *MissingFontspec) String() string { return fmt.Sprintf("missing font: %s", p.Fontspec) }

type MissingCargoCrate struct {
	Crate       string  `json:"crate"`
	Requirement *string `json:"requirement,omitempty"`
}

func (p *MissingCargoCrate) Kind() string   { return "missing-cargo-crate" }
func (p *MissingCargoCrate) IsGlobal() bool { return false }
func (p *MissingCargoCrate) String() string {
	return fmt.Sprintf("missing cargo crate: %s", p.Crate)
}

type MissingIntrospectionTypelib struct {
	Library string `json:"library"`
}

func (p *MissingIntrospectionTypelib) Kind() string   { return "missing-introspection-typelib" }
func (p *MissingIntrospectionTypelib) IsGlobal() bool { return false }
func (p *MissingIntrospectionTypelib) String() string {
	return fmt.Sprintf("missing GObject introspection typelib: %s", p.Library)
}

type MissingFortranCompiler struct{}

func (p *MissingFortranCompiler) Kind() string   { return "missing-fortran-compiler" }
func (p *MissingFortranCompiler) IsGlobal() bool { return false }
func (p *MissingFortranCompiler) String() string { return "missing Fortran compiler" }

type MissingRustCompiler struct{}

func (p *MissingRustCompiler) Kind() string   { return "missing-rust-compiler" }
func (p *MissingRustCompiler) IsGlobal() bool { return false }
func (p *MissingRustCompiler) String() string { return "missing Rust compiler" }

type MissingCSharpCompiler struct{}

func (p *MissingCSharpCompiler) Kind() string   { return "missing-csharp-compiler" }
func (p *MissingCSharpCompiler) IsGlobal() bool { return false }
func (p *MissingCSharpCompiler) String() string { return "missing C# compiler" }

type MissingAssembler struct{}

func (p *MissingAssembler) Kind() string   { return "missing-assembler" }
func (p *MissingAssembler) IsGlobal() bool { return false }
func (p *MissingAssembler) String() string { return "missing assembler" }

type MissingLibtool struct{}

func (p *MissingLibtool) Kind() string   { return "missing-libtool" }
func (p *MissingLibtool) IsGlobal() bool { return false }
func (p *MissingLibtool) String() string { return "missing libtool" }

type MissingLibrary struct {
	Library string `json:"library"`
}

func (p *MissingLibrary) Kind() string   { return "missing-library" }
func (p *MissingLibrary) IsGlobal() bool { return false }
func (p *MissingLibrary) String() string { return fmt.Sprintf("missing library: %s", p.Library) }

type MissingStaticLibrary struct {
	Library  string `json:"library"`
	Filename string `json:"filename,omitempty"`
}

func (p *MissingStaticLibrary) Kind() string   { return "missing-static-library" }
func (p *MissingStaticLibrary) IsGlobal() bool { return false }
func (p *MissingStaticLibrary) String() string {
	return fmt.Sprintf("missing static library: %s", p.Library)
}

type MissingMavenArtifacts struct {
	Artifacts []string `json:"artifacts"`
}

func (p *MissingMavenArtifacts) Kind() string   { return "missing-maven-artifacts" }
func (p *MissingMavenArtifacts) IsGlobal() bool { return false }
func (p *MissingMavenArtifacts) String() string {
	return fmt.Sprintf("missing maven artifacts: %v", p.Artifacts)
}

// MissingVagueDependency covers the catch-all "X not found" diagnostics
// that name a dependency without enough structure to classify further.
type MissingVagueDependency struct {
	Name           string  `json:"name"`
	MinimumVersion *string `json:"minimum_version,omitempty"`
}

func (p *MissingVagueDependency) Kind() string   { return "missing-vague-dependency" }
func (p *MissingVagueDependency) IsGlobal() bool { return false }
func (p *MissingVagueDependency) String() string {
	return fmt.Sprintf("missing dependency: %s", p.Name)
}

type MissingGnulibDirectory struct {
	Directory string `json:"directory"`
}

func (p *MissingGnulibDirectory) Kind() string   { return "missing-gnulib-directory" }
func (p *MissingGnulibDirectory) IsGlobal() bool { return false }
func (p *MissingGnulibDirectory) String() string {
	return fmt.Sprintf("missing gnulib directory: %s", p.Directory)
}

type MissingXMLEntity struct {
	URL string `json:"url"`
}

func (p *MissingXMLEntity) Kind() string   { return "missing-xml-entity" }
func (p *MissingXMLEntity) IsGlobal() bool { return false }
func (p *MissingXMLEntity) String() string { return fmt.Sprintf("missing XML entity: %s", p.URL) }

type MissingSecretGPGKey struct{}

func (p *MissingSecretGPGKey) Kind() string   { return "missing-secret-gpg-key" }
func (p *MissingSecretGPGKey) IsGlobal() bool { return false }
func (p *MissingSecretGPGKey) String() string { return "no secret GPG key available" }

type MissingGitIdentity struct{}

func (p *MissingGitIdentity) Kind() string   { return "missing-git-identity" }
func (p *MissingGitIdentity) IsGlobal() bool { return false }
func (p *MissingGitIdentity) String() string { return "missing git identity" }

type MissingPytestFixture struct {
	Fixture string `json:"fixture"`
}

func (p *MissingPytestFixture) Kind() string   { return "missing-pytest-fixture" }
func (p *MissingPytestFixture) IsGlobal() bool { return false }
func (p *MissingPytestFixture) String() string {
	return fmt.Sprintf("missing pytest fixture: %s", p.Fixture)
}

type MissingAutoconfMacro struct {
	Macro string `json:"macro"`
}

func (p *MissingAutoconfMacro) Kind() string   { return "missing-autoconf-macro" }
func (p *MissingAutoconfMacro) IsGlobal() bool { return false }
func (p *MissingAutoconfMacro) String() string {
	return fmt.Sprintf("missing autoconf macro: %s", p.Macro)
}

type MissingAutomakeInput struct {
	Path string `json:"path"`
}

func (p *MissingAutomakeInput) Kind() string   { return "missing-automake-input" }
func (p *MissingAutomakeInput) IsGlobal() bool { return false }
func (p *MissingAutomakeInput) String() string {
	return fmt.Sprintf("missing automake input: %s", p.Path)
}

type MissingConfigStatusInput struct {
	Path string `json:"path"`
}

func (p *MissingConfigStatusInput) Kind() string   { return "missing-config-status-input" }
func (p *MissingConfigStatusInput) IsGlobal() bool { return false }
func (p *MissingConfigStatusInput) String() string {
	return fmt.Sprintf("missing config.status input: %s", p.Path)
}

type MissingGnomeCommonDependency struct {
	Package        string  `json:"package"`
	MinimumVersion *string `json:"minimum_version,omitempty"`
}

func (p *MissingGnomeCommonDependency) Kind() string   { return "missing-gnome-common-dependency" }
func (p *MissingGnomeCommonDependency) IsGlobal() bool { return false }
func (p *MissingGnomeCommonDependency) String() string {
	return fmt.Sprintf("missing gnome-common dependency: %s", p.Package)
}

type GnomeCommonMissing struct{}

func (p *GnomeCommonMissing) Kind() string   { return "gnome-common-missing" }
func (p *GnomeCommonMissing) IsGlobal() bool { return false }
func (p *GnomeCommonMissing) String() string { return "gnome-common not installed" }

type MissingXfceDependency struct {
	Package string `json:"package"`
}

func (p *MissingXfceDependency) Kind() string   { return "missing-xfce-dependency" }
func (p *MissingXfceDependency) IsGlobal() bool { return false }
func (p *MissingXfceDependency) String() string {
	return fmt.Sprintf("missing XFCE dependency: %s", p.Package)
}

type MissingPostgresqlExtension struct {
	Extension string `json:"extension"`
}

func (p *MissingPostgresqlExtension) Kind() string   { return "missing-postgresql-extension" }
func (p *MissingPostgresqlExtension) IsGlobal() bool { return false }
func (p *MissingPostgresqlExtension) String() string {
	return fmt.Sprintf("missing PostgreSQL extension: %s", p.Extension)
}

type MissingDebcargoCrate struct {
	Crate string `json:"crate"`
}

func (p *MissingDebcargoCrate) Kind() string   { return "missing-debcargo-crate" }
func (p *MissingDebcargoCrate) IsGlobal() bool { return false }
func (p *MissingDebcargoCrate) String() string {
	return fmt.Sprintf("missing debcargo crate: %s", p.Crate)
}

type CcacheError struct {
	Error string `json:"error"`
}

func (p *CcacheError) Kind() string   { return "ccache-error" }
func (p *CcacheError) IsGlobal() bool { return false }
func (p *CcacheError) String() string { return fmt.Sprintf("ccache error: %s", p.Error) }
