package paths

import (
	"flag"
)

// SetupBaseDirFlag creates a string flag for the asset base directory. It
// defaults to def when that is set, else to whatever FindBaseDir finds.
func SetupBaseDirFlag(flagName, def string, flagPtr *string) {
	if def == "" {
		def = FindBaseDir(Dirs())
	}
	flag.StringVar(flagPtr, flagName, def, "Path to the asset directory holding palettes/ and templates/")
}

// SetupFilePathFlag creates a new string flag with the passed name with a sane
// default for the path to the file, if found using the Find function. If not,
// the flag defaults to an empty string.
func SetupFilePathFlag(fileName, flagName string, flagPtr *string) {
	flag.StringVar(flagPtr, flagName, Find(fileName, Dirs()), "Path to "+fileName)
}
