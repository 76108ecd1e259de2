package syncname

// EmitLegacyScriptsDefault is the default of the emitLegacyScripts project option
// when a project file leaves it unset.
func EmitLegacyScriptsDefault() *bool {
	v := true
	return &v
}
