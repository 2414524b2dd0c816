package wizard

import (
	"os"
)

// DetectionResult holds what was found in the environment.
type DetectionResult struct {
	EnvFile         string // path of a .env file, empty if none
	Host            string
	Username        string
	PasswordFromEnv bool
}

// Detector abstracts environment and filesystem lookups for testing.
type Detector interface {
	LookupEnv(key string) (string, bool)
	Stat(path string) (os.FileInfo, error)
}

// OSDetector uses the real OS for detection.
type OSDetector struct{}

func (OSDetector) LookupEnv(key string) (string, bool)   { return os.LookupEnv(key) }
func (OSDetector) Stat(path string) (os.FileInfo, error) { return os.Stat(path) }

// Detect looks for controller settings already present in the environment.
func Detect(d Detector) DetectionResult {
	if d == nil {
		d = OSDetector{}
	}

	result := DetectionResult{}

	for _, p := range []string{".env", "../.env"} {
		if info, err := d.Stat(p); err == nil && !info.IsDir() {
			result.EnvFile = p
			break
		}
	}

	if v, ok := d.LookupEnv("APICEM_CONTROLLER_HOST"); ok {
		result.Host = v
	}
	if v, ok := d.LookupEnv("APICEM_CONTROLLER_USERNAME"); ok {
		result.Username = v
	}
	if v, ok := d.LookupEnv("APICEM_CONTROLLER_PASSWORD"); ok && v != "" {
		result.PasswordFromEnv = true
	}

	return result
}
