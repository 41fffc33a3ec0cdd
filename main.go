package main

import (
	"hmss/cmd" // CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution.
//
// hmss (His Majesty's Software Suite) provisions a Linux workstation:
//   - Reads a JSON configuration (~/hmss_config.json) naming apt and pip packages,
//     the royal git repos, and the desktop wallpaper; writes the defaults if it is missing
//   - Runs the essential steps (OS check, apt upgrade, git setup) and aborts on the first failure
//   - Runs every non-essential step (Chrome, other apt packages, pip, cloning,
//     backup scheduling, wallpaper), recording each failure and carrying on
//   - Backs up the royal repos with `git fetch` and `git pull`, usually from a .bashrc hook
//
// Error handling strategy:
//   - Every step logs what went wrong to the console and to ~/hm_git.log and reports a plain
//     success flag, so one run applies as much as it can
//   - A failed essential step, a malformed config or a failed backup exits non-zero
func main() {
	cmd.Execute()
}
