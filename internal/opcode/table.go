// Package opcode holds the static, process-wide mnemonic table: for every
// mnemonic this dialect recognises, which encoding family it belongs to and
// the fixed bit-field values (opcode/funct/fmt/...) that family's encoder
// needs. Grounded on the teacher's op-info-driven dispatch in ie64asm.go
// (instrInfo table keyed by mnemonic, consulted once per encode rather than
// switching on mnemonic strings throughout the encoder) — generalised here
// from the teacher's single flat R/I/J split into the richer family set a
// real MIPS-family encoding needs.
package opcode

// Family names one of the distinct encoding shapes a mnemonic can have.
type Family int

const (
	R Family = iota
	RJalr
	RShift
	RShiftPlus32
	RShiftV
	RMultDiv
	RMfhiMflo
	RMthiMtlo
	RSyscallBreak
	RSync
	RERet
	I
	ILdSd
	IBranch
	IBranchLikely
	IBranchRsZero
	IBranchRsRtfmt
	Cop0Mov
	IfpuLs
	FpuMov
	FpuR
	FpuRUn
	FpuCvt
	FpuCmp
	FpuBranch
	J
	Custom
	PseudoSetreg
	PseudoBranch
)

// Info is one mnemonic's static description: everything its encoder needs
// that isn't supplied by the operands on the line.
type Info struct {
	Family      Family
	Opcode      byte
	Funct       byte
	Fmt         byte
	CopOp       byte
	RtField     byte
	CCBit       byte
	CustomValue uint32
}

// fpu sub-opcodes used in the Fmt field of FPU_MOV entries.
const (
	fpuMF = 0x00
	fpuMT = 0x04
	fpuCF = 0x02
	fpuCT = 0x06
)

// fpu format codes used in the Fmt field of FPU_R/FPU_R_UN/FPU_CVT*/FPU_CMP
// entries.
const (
	fmtSingle = 0x10
	fmtDouble = 0x11
	fmtWord   = 0x14
	fmtLong   = 0x15
)

const (
	opCop0  = 0x10
	opCop1  = 0x11
	opSpecl = 0x00
	opRegI  = 0x01
)

var table map[string]Info

// Lookup resolves a mnemonic (case-insensitive) to its op-info record.
func Lookup(mnemonic string) (Info, bool) {
	info, ok := table[foldKey(mnemonic)]
	return info, ok
}

func foldKey(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func init() {
	table = make(map[string]Info, 160)

	r := func(name string, funct byte) {
		table[name] = Info{Family: R, Opcode: opSpecl, Funct: funct}
	}
	rShift := func(name string, funct byte) {
		table[name] = Info{Family: RShift, Opcode: opSpecl, Funct: funct}
	}
	rShift32 := func(name string, funct byte) {
		table[name] = Info{Family: RShiftPlus32, Opcode: opSpecl, Funct: funct}
	}
	rShiftV := func(name string, funct byte) {
		table[name] = Info{Family: RShiftV, Opcode: opSpecl, Funct: funct}
	}
	rMulDiv := func(name string, funct byte) {
		table[name] = Info{Family: RMultDiv, Opcode: opSpecl, Funct: funct}
	}
	iOp := func(name string, opc byte) {
		table[name] = Info{Family: I, Opcode: opc}
	}
	iLdSd := func(name string, opc byte) {
		table[name] = Info{Family: ILdSd, Opcode: opc}
	}
	branch := func(name string, opc byte) {
		table[name] = Info{Family: IBranch, Opcode: opc}
	}
	branchL := func(name string, opc byte) {
		table[name] = Info{Family: IBranchLikely, Opcode: opc}
	}
	branchZ := func(name string, opc byte) {
		table[name] = Info{Family: IBranchRsZero, Opcode: opc}
	}
	branchRt := func(name string, rt byte) {
		table[name] = Info{Family: IBranchRsRtfmt, Opcode: opRegI, RtField: rt}
	}
	fpuLs := func(name string, opc byte) {
		table[name] = Info{Family: IfpuLs, Opcode: opc}
	}
	fpuMov := func(name string, sub byte) {
		table[name] = Info{Family: FpuMov, Opcode: opCop1, Fmt: sub}
	}
	fpuR := func(name string, funct byte) {
		table[name] = Info{Family: FpuR, Opcode: opCop1, Fmt: fmtSingle, Funct: funct}
	}
	fpuRUn := func(name string, funct byte) {
		table[name] = Info{Family: FpuRUn, Opcode: opCop1, Fmt: fmtSingle, Funct: funct}
	}
	fpuCvt := func(name string, fmt, funct byte) {
		table[name] = Info{Family: FpuCvt, Opcode: opCop1, Fmt: fmt, Funct: funct}
	}
	fpuCmp := func(name string, funct byte) {
		table[name] = Info{Family: FpuCmp, Opcode: opCop1, Fmt: fmtSingle, Funct: funct}
	}

	// --- R-type: rd, rs, rt (jr: rs only) ---
	r("add", 0x20)
	r("addu", 0x21)
	r("sub", 0x22)
	r("subu", 0x23)
	r("and", 0x24)
	r("or", 0x25)
	r("xor", 0x26)
	r("nor", 0x27)
	r("slt", 0x2A)
	r("sltu", 0x2B)
	r("dadd", 0x2C)
	r("daddu", 0x2D)
	r("dsub", 0x2E)
	r("dsubu", 0x2F)
	r("jr", 0x08)

	table["jalr"] = Info{Family: RJalr, Opcode: opSpecl, Funct: 0x09}

	// --- Shifts ---
	rShift("sll", 0x00)
	rShift("srl", 0x02)
	rShift("sra", 0x03)
	rShift("dsll", 0x38)
	rShift("dsrl", 0x3A)
	rShift("dsra", 0x3B)

	rShift32("dsll32", 0x3C)
	rShift32("dsrl32", 0x3E)
	rShift32("dsra32", 0x3F)

	rShiftV("sllv", 0x04)
	rShiftV("srlv", 0x06)
	rShiftV("srav", 0x07)
	rShiftV("dsllv", 0x14)
	rShiftV("dsrlv", 0x16)
	rShiftV("dsrav", 0x17)

	// --- Multiply/divide ---
	rMulDiv("mult", 0x18)
	rMulDiv("multu", 0x19)
	rMulDiv("div", 0x1A)
	rMulDiv("divu", 0x1B)
	rMulDiv("dmult", 0x1C)
	rMulDiv("dmultu", 0x1D)
	rMulDiv("ddiv", 0x1E)
	rMulDiv("ddivu", 0x1F)

	table["mfhi"] = Info{Family: RMfhiMflo, Opcode: opSpecl, Funct: 0x10}
	table["mflo"] = Info{Family: RMfhiMflo, Opcode: opSpecl, Funct: 0x12}
	table["mthi"] = Info{Family: RMthiMtlo, Opcode: opSpecl, Funct: 0x11}
	table["mtlo"] = Info{Family: RMthiMtlo, Opcode: opSpecl, Funct: 0x13}

	table["syscall"] = Info{Family: RSyscallBreak, Opcode: opSpecl, Funct: 0x0C}
	table["break"] = Info{Family: RSyscallBreak, Opcode: opSpecl, Funct: 0x0D}
	table["sync"] = Info{Family: RSync, Opcode: opSpecl, Funct: 0x0F}
	table["eret"] = Info{Family: RERet}

	// --- I-type ---
	iOp("addi", 0x08)
	iOp("addiu", 0x09)
	iOp("slti", 0x0A)
	iOp("sltiu", 0x0B)
	iOp("andi", 0x0C)
	iOp("ori", 0x0D)
	iOp("xori", 0x0E)
	iOp("lui", 0x0F)
	iOp("lb", 0x20)
	iOp("lh", 0x21)
	iOp("lwl", 0x22)
	iOp("lw", 0x23)
	iOp("lbu", 0x24)
	iOp("lhu", 0x25)
	iOp("lwr", 0x26)
	iOp("lwu", 0x27)
	iOp("sb", 0x28)
	iOp("sh", 0x29)
	iOp("swl", 0x2A)
	iOp("sw", 0x2B)
	iOp("swr", 0x2E)

	iLdSd("ld", 0x37)
	iLdSd("sd", 0x3F)
	iLdSd("lq", 0x1E)
	iLdSd("sq", 0x1F)

	branch("beq", 0x04)
	branch("bne", 0x05)
	branchL("beql", 0x14)
	branchL("bnel", 0x15)
	branchZ("blez", 0x06)
	branchZ("bgtz", 0x07)
	branchZ("blezl", 0x16)
	branchZ("bgtzl", 0x17)

	branchRt("bltz", 0x00)
	branchRt("bgez", 0x01)
	branchRt("bltzal", 0x10)
	branchRt("bgezal", 0x11)

	table["mfc0"] = Info{Family: Cop0Mov, Opcode: opCop0, Fmt: fpuMF}
	table["mtc0"] = Info{Family: Cop0Mov, Opcode: opCop0, Fmt: fpuMT}

	fpuLs("lwc1", 0x31)
	fpuLs("swc1", 0x39)
	fpuLs("ldc1", 0x35)
	fpuLs("sdc1", 0x3D)

	fpuMov("mfc1", fpuMF)
	fpuMov("mtc1", fpuMT)
	fpuMov("cfc1", fpuCF)
	fpuMov("ctc1", fpuCT)

	fpuR("add.s", 0x00)
	fpuR("sub.s", 0x01)
	fpuR("mul.s", 0x02)
	fpuR("div.s", 0x03)

	fpuRUn("sqrt.s", 0x04)
	fpuRUn("abs.s", 0x05)
	fpuRUn("mov.s", 0x06)
	fpuRUn("neg.s", 0x07)

	fpuCvt("cvt.s.w", fmtWord, 0x20)
	fpuCvt("cvt.w.s", fmtSingle, 0x24)
	fpuCvt("cvt.s.l", fmtLong, 0x20)
	fpuCvt("cvt.l.s", fmtSingle, 0x25)
	fpuCvt("cvt.d.s", fmtSingle, 0x21)
	fpuCvt("cvt.s.d", fmtDouble, 0x20)
	fpuCvt("cvt.d.w", fmtWord, 0x21)
	fpuCvt("cvt.w.d", fmtDouble, 0x24)
	fpuCvt("cvt.d.l", fmtLong, 0x21)
	fpuCvt("cvt.l.d", fmtDouble, 0x25)

	fpuCmp("c.eq.s", 0x32)
	fpuCmp("c.lt.s", 0x3C)
	fpuCmp("c.le.s", 0x3E)

	table["bc1t"] = Info{Family: FpuBranch, Opcode: opCop1, Fmt: 0x08, CCBit: 1}
	table["bc1f"] = Info{Family: FpuBranch, Opcode: opCop1, Fmt: 0x08, CCBit: 0}

	table["j"] = Info{Family: J, Opcode: 0x02}
	table["jal"] = Info{Family: J, Opcode: 0x03}

	table["nop"] = Info{Family: Custom, CustomValue: 0x00000000}

	table["setreg"] = Info{Family: PseudoSetreg}
	table["b"] = Info{Family: PseudoBranch}
}
