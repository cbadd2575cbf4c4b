package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TargControl API
const TARGCONTROL_BASE_URL_FORMAT = "https://%s.targcontrol.com"
const TARGCONTROL_DEFAULT_DOMAIN = "dev"
const TARGCONTROL_API_KEY_HEADER = "X-API-Key"

const LOCATIONS_ENDPOINT = "/external/api/locations"
const SKILLS_ENDPOINT = "/external/api/employee-skills"
const PATTERNS_ENDPOINT = "/external/api/forecaster/pattern"
const METRICS_ENDPOINT = "/external/api/forecaster/metric"
const DATASET_SAVE_ENDPOINT = "/external/api/forecaster/dataset/save"

// Only the first page is read; it must be large enough for every location.
const LOCATIONS_PAGE = 0
const LOCATIONS_PAGE_SIZE = 100

// Well-known ids used by the constant scheduling variant
const METRIC_ID = "0fc7ab83-41e2-4f51-8ea4-502e66d00a5b"
const FORECAST_MODEL_ID = "4fd37b8e-fe68-4b51-b703-e77dbe9231be"
const PATTERN_DAY_ID = "cf3ad7e1-b200-4f4f-a188-8f142a345d72"
const PATTERN_NIGHT_ID = "5f308484-7b04-4453-a62f-588e52942a65"

// Spreadsheet columns
const PRODUCT_COLUMN = "Продукция"
const LOCATION_COLUMN = "Локация"
const DESCRIPTION_COLUMN = "Описание"

// Skill demand encoding: a base entry and a target entry per skill
const PATTERN_BASE_VALUE = 10
const PATTERN_BASE_SHIFTS_COUNT = 0
const PATTERN_TARGET_VALUE = 20

const DATASET_DESCRIPTION_FORMAT = "Dataset for %s"
const PATTERN_DESCRIPTION_FORMAT = "Pattern for %s"

// Default pattern windows
const DEFAULT_START_TIME_DAY = "08:00:00"
const DEFAULT_END_TIME_DAY = "20:00:00"
const DEFAULT_START_TIME_NIGHT = "20:00:00"
const DEFAULT_END_TIME_NIGHT = "08:00:00"

// Run lock
const RUN_LOCK_KEY_FORMAT = "dataset_upload_run_lock_v1:%s"
const RUN_LOCK_TTL_MINUTES = 30

// Form surface
const SERVER_ADDRESS = ":8080"
const MAX_UPLOAD_SIZE_BYTES = 32 << 20

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const MOCK_REFERENCE_DATA_RESOURCE = "mock_reference_data.json"

// RequiredColumns lists the columns every spreadsheet must have.
func RequiredColumns() []string {
	return []string{PRODUCT_COLUMN, LOCATION_COLUMN}
}

// BaseURL returns the API root for a deployment domain. A format without a
// %s verb is used as is.
func BaseURL(format, domain string) string {
	if format == "" {
		format = TARGCONTROL_BASE_URL_FORMAT
	}
	if !strings.Contains(format, "%s") {
		return strings.TrimSuffix(format, "/")
	}
	return fmt.Sprintf(format, domain)
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func GetResourcePath(resource_file string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resource_file)
}
