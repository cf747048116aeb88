// Package config loads the arcade's settings presets.
//
// Presets are JSON files in the configs directory, one engine.Settings per
// file. The file name without .json is the preset ID clients pass when they
// create a session:
//   - classic: the original rules (built in, used when classic.json is
//     missing or invalid)
//   - quick: small boards and instant computer replies
//   - expert: deeper checkers search and a 16x30 minefield
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//	settings, err := manager.LoadConfig("quick")
//	presets, err := manager.ListConfigs()
//
// Every file goes through engine.ValidateSettings. Invalid files are left
// out of ListConfigs and rejected by LoadConfig with ErrInvalidConfig.
package config
