package config

// Example usage of the configuration system:
//
// 1. Load configuration with all sources:
//
//     cfg, err := config.Load("", nil)
//     if err != nil {
//         log.Fatal(err)
//     }
//
// 2. Load with command line flags:
//
//     flags := map[string]interface{}{
//         "output":    "./faces",
//         "timeout":   15 * time.Second,
//         "log-level": "debug",
//     }
//     cfg, err := config.Load("/path/to/config.yaml", flags)
//
// 3. Environment variables (also read from .env):
//
//     IMGCOLLECT_OUTPUT_DIR=./faces
//     IMGCOLLECT_TIMEOUT=15s
//     IMGCOLLECT_SAVE_MANIFEST=true
//     IMGCOLLECT_LOG_LEVEL=debug
