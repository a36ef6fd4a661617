package compiler

import (
	"fmt"

	"github.com/eeasm/ps2masm/internal/operand"
	"github.com/eeasm/ps2masm/internal/opcode"
	"github.com/eeasm/ps2masm/internal/register"
)

// memMnemonics are the "I" family entries whose second operand is an
// offset(base) memory reference rather than a plain immediate.
var memMnemonics = map[string]bool{
	"lb": true, "lh": true, "lwl": true, "lw": true, "lbu": true, "lhu": true,
	"lwr": true, "lwu": true, "sb": true, "sh": true, "swl": true, "sw": true, "swr": true,
}

// encodeMnemonic dispatches mnemonic's operands to its family's encoder and
// returns the one or more 32-bit words it emits.
func encodeMnemonic(info opcode.Info, mnemonic string, ops []string, addr uint32, labels *labelTable) ([]uint32, error) {
	switch info.Family {
	case opcode.R:
		return encodeR(info, mnemonic, ops, labels)
	case opcode.RJalr:
		return encodeRJalr(info, ops, labels)
	case opcode.RShift, opcode.RShiftPlus32:
		return encodeRShift(info, ops, labels)
	case opcode.RShiftV:
		return encodeRShiftV(info, ops, labels)
	case opcode.RMultDiv:
		return encodeRMultDiv(info, ops, labels)
	case opcode.RMfhiMflo:
		return encodeRSingle(info, ops, labels, true)
	case opcode.RMthiMtlo:
		return encodeRSingle(info, ops, labels, false)
	case opcode.RSyscallBreak, opcode.RSync:
		return encodeRCode(info, ops, labels)
	case opcode.RERet:
		return []uint32{(0x10 << 26) | (1 << 25) | 0x18}, nil
	case opcode.I:
		return encodeI(info, mnemonic, ops, labels)
	case opcode.ILdSd:
		return encodeMemory(info, ops, labels)
	case opcode.IBranch, opcode.IBranchLikely:
		return encodeBranch(info, ops, addr, labels)
	case opcode.IBranchRsZero:
		return encodeBranchRsZero(info, ops, addr, labels)
	case opcode.IBranchRsRtfmt:
		return encodeBranchRsRtfmt(info, ops, addr, labels)
	case opcode.Cop0Mov:
		return encodeCop0Mov(info, ops, labels)
	case opcode.IfpuLs:
		return encodeFpuLs(info, ops, labels)
	case opcode.FpuMov:
		return encodeFpuMov(info, ops)
	case opcode.FpuR:
		return encodeFpuR(info, ops)
	case opcode.FpuRUn:
		return encodeFpuRUn(info, mnemonic, ops)
	case opcode.FpuCvt:
		return encodeFpuCvt(info, ops)
	case opcode.FpuCmp:
		return encodeFpuCmp(info, ops)
	case opcode.FpuBranch:
		return encodeFpuBranch(info, ops, addr, labels)
	case opcode.J:
		return encodeJ(info, ops, labels)
	case opcode.Custom:
		return []uint32{info.CustomValue}, nil
	case opcode.PseudoSetreg:
		return encodeSetreg(ops, labels)
	case opcode.PseudoBranch:
		return encodePseudoBranch(ops, addr, labels)
	default:
		return nil, fmt.Errorf("unhandled encoding family for %q", mnemonic)
	}
}

func parseReg(op string, labels *labelTable) (byte, error) {
	v, err := operand.Parse(op, labels, false)
	if err != nil {
		return 0, err
	}
	if v < 0 || v >= 32 {
		return 0, fmt.Errorf("register operand %q out of range", op)
	}
	return byte(v), nil
}

func parseFPR(op string) (byte, error) {
	n, ok := register.IsFPR(op)
	if !ok {
		return 0, fmt.Errorf("expected a floating-point register, got %q", op)
	}
	return n, nil
}

func requireOperands(ops []string, n int) error {
	if len(ops) != n {
		return fmt.Errorf("expected %d operand(s), got %d", n, len(ops))
	}
	return nil
}

func encodeR(info opcode.Info, mnemonic string, ops []string, labels *labelTable) ([]uint32, error) {
	if mnemonic == "jr" {
		if err := requireOperands(ops, 1); err != nil {
			return nil, err
		}
		rs, err := parseReg(ops[0], labels)
		if err != nil {
			return nil, err
		}
		return []uint32{(uint32(info.Opcode) << 26) | (uint32(rs) << 21) | uint32(info.Funct)}, nil
	}
	if err := requireOperands(ops, 3); err != nil {
		return nil, err
	}
	rd, err := parseReg(ops[0], labels)
	if err != nil {
		return nil, err
	}
	rs, err := parseReg(ops[1], labels)
	if err != nil {
		return nil, err
	}
	rt, err := parseReg(ops[2], labels)
	if err != nil {
		return nil, err
	}
	w := (uint32(info.Opcode) << 26) | (uint32(rs) << 21) | (uint32(rt) << 16) | (uint32(rd) << 11) | uint32(info.Funct)
	return []uint32{w}, nil
}

func encodeRJalr(info opcode.Info, ops []string, labels *labelTable) ([]uint32, error) {
	var rd, rs byte
	var err error
	switch len(ops) {
	case 1:
		rd = 31
		rs, err = parseReg(ops[0], labels)
	case 2:
		rd, err = parseReg(ops[0], labels)
		if err == nil {
			rs, err = parseReg(ops[1], labels)
		}
	default:
		return nil, fmt.Errorf("jalr expects \"rs\" or \"rd, rs\", got %d operand(s)", len(ops))
	}
	if err != nil {
		return nil, err
	}
	word := (uint32(0x00) << 26) | (uint32(rs) << 21) | (uint32(rd) << 11) | uint32(info.Funct)
	return []uint32{word}, nil
}

func encodeRShift(info opcode.Info, ops []string, labels *labelTable) ([]uint32, error) {
	if err := requireOperands(ops, 3); err != nil {
		return nil, err
	}
	rd, err := parseReg(ops[0], labels)
	if err != nil {
		return nil, err
	}
	rt, err := parseReg(ops[1], labels)
	if err != nil {
		return nil, err
	}
	shamtVal, err := operand.Parse(ops[2], labels, false)
	if err != nil {
		return nil, err
	}
	shamt := uint32(shamtVal) & 0x1F
	w := (uint32(info.Opcode) << 26) | (uint32(rt) << 16) | (uint32(rd) << 11) | (shamt << 6) | uint32(info.Funct)
	return []uint32{w}, nil
}

func encodeRShiftV(info opcode.Info, ops []string, labels *labelTable) ([]uint32, error) {
	if err := requireOperands(ops, 3); err != nil {
		return nil, err
	}
	rd, err := parseReg(ops[0], labels)
	if err != nil {
		return nil, err
	}
	rt, err := parseReg(ops[1], labels)
	if err != nil {
		return nil, err
	}
	rs, err := parseReg(ops[2], labels)
	if err != nil {
		return nil, err
	}
	w := (uint32(info.Opcode) << 26) | (uint32(rs) << 21) | (uint32(rt) << 16) | (uint32(rd) << 11) | uint32(info.Funct)
	return []uint32{w}, nil
}

func encodeRMultDiv(info opcode.Info, ops []string, labels *labelTable) ([]uint32, error) {
	var rd, rs, rt byte
	var err error
	switch len(ops) {
	case 2:
		rs, err = parseReg(ops[0], labels)
		if err == nil {
			rt, err = parseReg(ops[1], labels)
		}
	case 3:
		rd, err = parseReg(ops[0], labels)
		if err == nil {
			rs, err = parseReg(ops[1], labels)
		}
		if err == nil {
			rt, err = parseReg(ops[2], labels)
		}
	default:
		return nil, fmt.Errorf("expected \"rs, rt\" or \"rd, rs, rt\", got %d operand(s)", len(ops))
	}
	if err != nil {
		return nil, err
	}
	w := (uint32(info.Opcode) << 26) | (uint32(rs) << 21) | (uint32(rt) << 16) | (uint32(rd) << 11) | uint32(info.Funct)
	return []uint32{w}, nil
}

func encodeRSingle(info opcode.Info, ops []string, labels *labelTable, isRd bool) ([]uint32, error) {
	if err := requireOperands(ops, 1); err != nil {
		return nil, err
	}
	r, err := parseReg(ops[0], labels)
	if err != nil {
		return nil, err
	}
	var w uint32
	if isRd {
		w = (uint32(info.Opcode) << 26) | (uint32(r) << 11) | uint32(info.Funct)
	} else {
		w = (uint32(info.Opcode) << 26) | (uint32(r) << 21) | uint32(info.Funct)
	}
	return []uint32{w}, nil
}

func encodeRCode(info opcode.Info, ops []string, labels *labelTable) ([]uint32, error) {
	var code uint32
	if len(ops) > 1 {
		return nil, fmt.Errorf("expected at most one operand, got %d", len(ops))
	}
	if len(ops) == 1 && ops[0] != "" {
		v, err := operand.Parse(ops[0], labels, false)
		if err != nil {
			return nil, err
		}
		code = uint32(v) & 0xFFFFF
	}
	w := (uint32(info.Opcode) << 26) | (code << 6) | uint32(info.Funct)
	return []uint32{w}, nil
}

func encodeI(info opcode.Info, mnemonic string, ops []string, labels *labelTable) ([]uint32, error) {
	if mnemonic == "lui" {
		if err := requireOperands(ops, 2); err != nil {
			return nil, err
		}
		rt, err := parseReg(ops[0], labels)
		if err != nil {
			return nil, err
		}
		imm, err := operand.Parse(ops[1], labels, true)
		if err != nil {
			return nil, err
		}
		w := (uint32(info.Opcode) << 26) | (uint32(rt) << 16) | (uint32(imm) & 0xFFFF)
		return []uint32{w}, nil
	}
	if memMnemonics[mnemonic] {
		return encodeMemory(info, ops, labels)
	}
	if err := requireOperands(ops, 3); err != nil {
		return nil, err
	}
	rt, err := parseReg(ops[0], labels)
	if err != nil {
		return nil, err
	}
	rs, err := parseReg(ops[1], labels)
	if err != nil {
		return nil, err
	}
	imm, err := operand.Parse(ops[2], labels, true)
	if err != nil {
		return nil, err
	}
	w := (uint32(info.Opcode) << 26) | (uint32(rs) << 21) | (uint32(rt) << 16) | (uint32(imm) & 0xFFFF)
	return []uint32{w}, nil
}

func encodeMemory(info opcode.Info, ops []string, labels *labelTable) ([]uint32, error) {
	if err := requireOperands(ops, 2); err != nil {
		return nil, err
	}
	rt, err := parseReg(ops[0], labels)
	if err != nil {
		return nil, err
	}
	imm, rs, err := operand.ParseMemOffset(ops[1], labels)
	if err != nil {
		return nil, err
	}
	w := (uint32(info.Opcode) << 26) | (uint32(rs) << 21) | (uint32(rt) << 16) | (uint32(imm) & 0xFFFF)
	return []uint32{w}, nil
}

// branchOffset computes the signed word-granularity displacement encoded
// into a branch's 16-bit immediate. Measured from the branch word's own
// address rather than the conventional MIPS delay-slot-adjusted "address
// of branch + 4" — this dialect has no delay slot, and pinning the offset
// to addr (not addr+4) is what the reference encodings actually produce.
func branchOffset(target int32, addr uint32) (uint32, error) {
	offset := (int64(target) - int64(addr)) / 4
	if offset < -32768 || offset > 32767 {
		return 0, fmt.Errorf("branch offset %d out of range", offset)
	}
	return uint32(int32(offset)) & 0xFFFF, nil
}

func encodeBranch(info opcode.Info, ops []string, addr uint32, labels *labelTable) ([]uint32, error) {
	if err := requireOperands(ops, 3); err != nil {
		return nil, err
	}
	rs, err := parseReg(ops[0], labels)
	if err != nil {
		return nil, err
	}
	rt, err := parseReg(ops[1], labels)
	if err != nil {
		return nil, err
	}
	target, err := operand.Parse(ops[2], labels, false)
	if err != nil {
		return nil, err
	}
	off, err := branchOffset(target, addr)
	if err != nil {
		return nil, err
	}
	w := (uint32(info.Opcode) << 26) | (uint32(rs) << 21) | (uint32(rt) << 16) | off
	return []uint32{w}, nil
}

func encodeBranchRsZero(info opcode.Info, ops []string, addr uint32, labels *labelTable) ([]uint32, error) {
	if err := requireOperands(ops, 2); err != nil {
		return nil, err
	}
	rs, err := parseReg(ops[0], labels)
	if err != nil {
		return nil, err
	}
	target, err := operand.Parse(ops[1], labels, false)
	if err != nil {
		return nil, err
	}
	off, err := branchOffset(target, addr)
	if err != nil {
		return nil, err
	}
	w := (uint32(info.Opcode) << 26) | (uint32(rs) << 21) | off
	return []uint32{w}, nil
}

func encodeBranchRsRtfmt(info opcode.Info, ops []string, addr uint32, labels *labelTable) ([]uint32, error) {
	if err := requireOperands(ops, 2); err != nil {
		return nil, err
	}
	rs, err := parseReg(ops[0], labels)
	if err != nil {
		return nil, err
	}
	target, err := operand.Parse(ops[1], labels, false)
	if err != nil {
		return nil, err
	}
	off, err := branchOffset(target, addr)
	if err != nil {
		return nil, err
	}
	w := (uint32(info.Opcode) << 26) | (uint32(rs) << 21) | (uint32(info.RtField) << 16) | off
	return []uint32{w}, nil
}

func encodeCop0Mov(info opcode.Info, ops []string, labels *labelTable) ([]uint32, error) {
	if err := requireOperands(ops, 2); err != nil {
		return nil, err
	}
	rt, err := parseReg(ops[0], labels)
	if err != nil {
		return nil, err
	}
	rdVal, err := operand.Parse(ops[1], labels, false)
	if err != nil {
		return nil, err
	}
	rd := uint32(rdVal) & 0x1F
	w := (uint32(info.Opcode) << 26) | (uint32(info.Fmt) << 21) | (uint32(rt) << 16) | (rd << 11)
	return []uint32{w}, nil
}

func encodeFpuLs(info opcode.Info, ops []string, labels *labelTable) ([]uint32, error) {
	if err := requireOperands(ops, 2); err != nil {
		return nil, err
	}
	ft, err := parseFPR(ops[0])
	if err != nil {
		return nil, err
	}
	imm, rs, err := operand.ParseMemOffset(ops[1], labels)
	if err != nil {
		return nil, err
	}
	w := (uint32(info.Opcode) << 26) | (uint32(rs) << 21) | (uint32(ft) << 16) | (uint32(imm) & 0xFFFF)
	return []uint32{w}, nil
}

func encodeFpuMov(info opcode.Info, ops []string) ([]uint32, error) {
	if err := requireOperands(ops, 2); err != nil {
		return nil, err
	}
	fpr0, isFpr0 := register.IsFPR(ops[0])
	fpr1, isFpr1 := register.IsFPR(ops[1])

	var gpr, fpr byte
	switch {
	case isFpr0 && isFpr1:
		return nil, fmt.Errorf("expected one GPR and one FPR, got two floating-point registers")
	case isFpr0:
		fpr = fpr0
		g, ok := register.Lookup(ops[1])
		if !ok {
			return nil, fmt.Errorf("unknown register %q", ops[1])
		}
		gpr = g
	case isFpr1:
		fpr = fpr1
		g, ok := register.Lookup(ops[0])
		if !ok {
			return nil, fmt.Errorf("unknown register %q", ops[0])
		}
		gpr = g
	default:
		return nil, fmt.Errorf("expected one GPR and one FPR, got two general-purpose registers")
	}
	w := (uint32(info.Opcode) << 26) | (uint32(info.Fmt) << 21) | (uint32(gpr) << 16) | (uint32(fpr) << 11)
	return []uint32{w}, nil
}

func encodeFpuR(info opcode.Info, ops []string) ([]uint32, error) {
	if err := requireOperands(ops, 3); err != nil {
		return nil, err
	}
	fd, err := parseFPR(ops[0])
	if err != nil {
		return nil, err
	}
	fs, err := parseFPR(ops[1])
	if err != nil {
		return nil, err
	}
	ft, err := parseFPR(ops[2])
	if err != nil {
		return nil, err
	}
	w := (uint32(info.Opcode) << 26) | (uint32(info.Fmt) << 21) | (uint32(ft) << 16) | (uint32(fs) << 11) | (uint32(fd) << 6) | uint32(info.Funct)
	return []uint32{w}, nil
}

func encodeFpuRUn(info opcode.Info, mnemonic string, ops []string) ([]uint32, error) {
	if err := requireOperands(ops, 2); err != nil {
		return nil, err
	}
	fd, err := parseFPR(ops[0])
	if err != nil {
		return nil, err
	}
	fs, err := parseFPR(ops[1])
	if err != nil {
		return nil, err
	}
	var ft byte
	if mnemonic == "sqrt.s" && fd == fs {
		ft = fd
		fs = 0
	}
	w := (uint32(info.Opcode) << 26) | (uint32(info.Fmt) << 21) | (uint32(ft) << 16) | (uint32(fs) << 11) | (uint32(fd) << 6) | uint32(info.Funct)
	return []uint32{w}, nil
}

func encodeFpuCvt(info opcode.Info, ops []string) ([]uint32, error) {
	if err := requireOperands(ops, 2); err != nil {
		return nil, err
	}
	fd, err := parseFPR(ops[0])
	if err != nil {
		return nil, err
	}
	fs, err := parseFPR(ops[1])
	if err != nil {
		return nil, err
	}
	w := (uint32(info.Opcode) << 26) | (uint32(info.Fmt) << 21) | (uint32(fs) << 11) | (uint32(fd) << 6) | uint32(info.Funct)
	return []uint32{w}, nil
}

func encodeFpuCmp(info opcode.Info, ops []string) ([]uint32, error) {
	if err := requireOperands(ops, 2); err != nil {
		return nil, err
	}
	fs, err := parseFPR(ops[0])
	if err != nil {
		return nil, err
	}
	ft, err := parseFPR(ops[1])
	if err != nil {
		return nil, err
	}
	w := (uint32(info.Opcode) << 26) | (uint32(info.Fmt) << 21) | (uint32(ft) << 16) | (uint32(fs) << 11) | uint32(info.Funct)
	return []uint32{w}, nil
}

func encodeFpuBranch(info opcode.Info, ops []string, addr uint32, labels *labelTable) ([]uint32, error) {
	if err := requireOperands(ops, 1); err != nil {
		return nil, err
	}
	target, err := operand.Parse(ops[0], labels, false)
	if err != nil {
		return nil, err
	}
	off, err := branchOffset(target, addr)
	if err != nil {
		return nil, err
	}
	w := (uint32(info.Opcode) << 26) | (uint32(info.Fmt) << 21) | (uint32(info.CCBit) << 16) | off
	return []uint32{w}, nil
}

func encodeJ(info opcode.Info, ops []string, labels *labelTable) ([]uint32, error) {
	if err := requireOperands(ops, 1); err != nil {
		return nil, err
	}
	target, err := operand.Parse(ops[0], labels, false)
	if err != nil {
		return nil, err
	}
	w := (uint32(info.Opcode) << 26) | ((uint32(target) >> 2) & 0x03FFFFFF)
	return []uint32{w}, nil
}

func encodeSetreg(ops []string, labels *labelTable) ([]uint32, error) {
	if err := requireOperands(ops, 2); err != nil {
		return nil, err
	}
	rd, err := parseReg(ops[0], labels)
	if err != nil {
		return nil, err
	}
	value, err := resolveDirectiveValue(ops[1], labels)
	if err != nil {
		return nil, err
	}
	upper := value >> 16
	lower := value & 0xFFFF
	lui := (uint32(0x0F) << 26) | (uint32(rd) << 16) | upper
	ori := (uint32(0x0D) << 26) | (uint32(rd) << 21) | (uint32(rd) << 16) | lower
	return []uint32{lui, ori}, nil
}

func encodePseudoBranch(ops []string, addr uint32, labels *labelTable) ([]uint32, error) {
	if err := requireOperands(ops, 1); err != nil {
		return nil, err
	}
	target, err := operand.Parse(ops[0], labels, false)
	if err != nil {
		return nil, err
	}
	off, err := branchOffset(target, addr)
	if err != nil {
		return nil, err
	}
	w := (uint32(0x04) << 26) | off
	return []uint32{w}, nil
}
