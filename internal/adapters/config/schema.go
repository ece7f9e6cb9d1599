package config

// Zkcfile represents the structure of the zkc.yaml configuration file.
type Zkcfile struct {
	Version       string      `yaml:"version"`
	Name          string      `yaml:"name"`
	Root          string      `yaml:"root"`
	Sources       string      `yaml:"sources"`
	Entries       []string    `yaml:"entries"`
	LibraryPaths  []string    `yaml:"libraryPaths"`
	LinkLibraries []string    `yaml:"linkLibraries"`
	Artifacts     string      `yaml:"artifacts"`
	Prime         string      `yaml:"prime"`
	Optimization  *int        `yaml:"optimization"`
	Outputs       []string    `yaml:"outputs"`
	Compiler      CompilerDTO `yaml:"compiler"`
}

// CompilerDTO represents the compiler section of zkc.yaml.
type CompilerDTO struct {
	Version  string `yaml:"version"`
	Strict   bool   `yaml:"strict"`
	URL      string `yaml:"url"`
	CacheDir string `yaml:"cacheDir"`
}

// packageDescriptor is the subset of package.json the loader reads.
type packageDescriptor struct {
	Name string `json:"name"`
}
