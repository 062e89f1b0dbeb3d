package vm

// RegisterDefaults installs every instruction in §4.4 into d. Split across
// the instr_*.go files by family, mirroring the grounding repo's grouping
// of its execInstructions switch into one case block per opcode family.
func RegisterDefaults(d *Dispatcher) {
	registerArithmetic(d)
	registerConversions(d)
	registerStackOps(d)
	registerMemoryOps(d)
	registerFlowOps(d)
}
