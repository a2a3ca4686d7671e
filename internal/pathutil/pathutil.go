// Package pathutil manages application file paths and locations
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
)

const appDir = "tourstudio"

// Paths holds all application path configurations.
type Paths struct {
	configFileName string
	logFileName    string
	exportDirName  string

	// Computed absolute paths
	configFilePath string
	dataDir        string
	sessionDir     string
	logFilePath    string
	exportDir      string
}

var (
	paths *Paths
	once  sync.Once
)

// Initialize must be called once at program startup.
func Initialize() error {
	var initErr error

	once.Do(func() {
		paths = &Paths{
			configFileName: "config.yml",
			logFileName:    "tourstudio.log",
			exportDirName:  "tourstudio",
		}

		paths.applyEnvironmentOverrides()
		initErr = paths.computePaths()
	})

	return initErr
}

// Must panics if paths haven't been initialized.
func Must() *Paths {
	if paths == nil {
		panic("pathutil.Initialize() must be called before accessing paths")
	}

	return paths
}

func ConfigFilePath() string {
	return Must().configFilePath
}

func DataDir() string {
	return Must().dataDir
}

// SessionDir is where the artifact store of a running session lives.
func SessionDir() string {
	return Must().sessionDir
}

func LogFilePath() string {
	return Must().logFilePath
}

// ExportDir is the default destination of exported bundles.
func ExportDir() string {
	return Must().exportDir
}

func (p *Paths) applyEnvironmentOverrides() {
	env := strings.TrimSpace(os.Getenv("TOURSTUDIO_ENV"))
	if env != "" {
		p.configFileName = fmt.Sprintf("config_%s.yml", env)
		p.logFileName = fmt.Sprintf("tourstudio_%s.log", env)
		p.exportDirName = fmt.Sprintf("tourstudio_%s", env)
	}
}

func (p *Paths) computePaths() error {
	var err error

	relPath := filepath.Join(appDir, p.configFileName)

	p.configFilePath, err = xdg.ConfigFile(relPath)
	if err != nil {
		return err
	}

	p.dataDir, err = xdg.DataFile(appDir)
	if err != nil {
		return err
	}

	p.sessionDir = filepath.Join(p.dataDir, "sessions")

	p.logFilePath = filepath.Join(p.dataDir, "log", p.logFileName)

	p.exportDir = filepath.Join(xdg.UserDirs.Documents, p.exportDirName)

	return nil
}

// StripExtension returns the input file name without its extension.
func StripExtension(fileName string) string {
	return fileName[:len(fileName)-len(filepath.Ext(fileName))]
}
