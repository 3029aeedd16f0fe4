// Package cli implements the console demo binary.
//
// Every subcommand except completion is a framework command bound through
// console.Kernel.Cobra. Cobra only routes: it hands the raw tokens to the
// kernel, which parses declared and undeclared options, checks
// requirements, prompts for missing data, transforms and validates before
// the handler runs.
//
// # Command Structure
//
//	console greet [name]           - Greet someone, prompting for the name
//	console backup <src> <dst>     - Copy a tree in a background task
//	console env [path]             - Show the variables of an env file
//	console render <template>      - Render a template file or named view
//	console version                - Print version information
//	console completion <shell>     - Generate shell completion scripts
//
// # Configuration
//
// Settings come from .console.yaml (found upward from the working
// directory), ~/.config/console/config.yaml and CONSOLE_* environment
// variables. CONSOLE_CONFIG names an explicit file; a flag can't, because
// subcommands leave flag parsing to the kernel.
package cli
