// This file is part of Zwalker.
//
// Zwalker is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zwalker is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zwalker.  If not, see <https://www.gnu.org/licenses/>.

package cpu

import (
	"fmt"

	"github.com/avwohl/zwalker-sub001/logger"
	"github.com/avwohl/zwalker-sub001/zmachine/header"
	"github.com/avwohl/zwalker-sub001/zmachine/instructions"
	"github.com/avwohl/zwalker-sub001/zmachine/zstring"
)

// arg returns the numbered operand. Missing operands are zero.
func (mc *CPU) arg(i int) uint16 {
	if i >= len(mc.LastResult.Operands) {
		return 0
	}
	return mc.LastResult.Operands[i]
}

func (mc *CPU) args() int {
	return len(mc.LastResult.Operands)
}

func (mc *CPU) tail() []uint16 {
	if len(mc.LastResult.Operands) < 2 {
		return nil
	}
	return mc.LastResult.Operands[1:]
}

func boolToWord(b bool) uint16 {
	if b {
		return 1
	}
	return 0
}

// execute the decoded instruction in LastResult.
func (mc *CPU) execute() error {
	r := &mc.LastResult
	a := mc.arg(0)
	b := mc.arg(1)
	c := mc.arg(2)

	switch r.Defn.Operator {
	case instructions.Nop:
		return nil

	// 2OP
	case instructions.Je:
		if mc.args() < 2 {
			logger.Logf(mc.instance, mc.instance.Tag("cpu"), "je with %d operands at %#05x", mc.args(), r.Address)
			return mc.branch(false)
		}
		for _, o := range mc.tail() {
			if o == a {
				return mc.branch(true)
			}
		}
		return mc.branch(false)

	case instructions.Jl:
		return mc.branch(int16(a) < int16(b))

	case instructions.Jg:
		return mc.branch(int16(a) > int16(b))

	case instructions.DecChk:
		v := int16(mc.peekVar(uint8(a))) - 1
		if err := mc.replaceVar(uint8(a), uint16(v)); err != nil {
			return err
		}
		return mc.branch(v < int16(b))

	case instructions.IncChk:
		v := int16(mc.peekVar(uint8(a))) + 1
		if err := mc.replaceVar(uint8(a), uint16(v)); err != nil {
			return err
		}
		return mc.branch(v > int16(b))

	case instructions.Jin:
		return mc.branch(mc.objects.Parent(a) == b)

	case instructions.Test:
		return mc.branch(a&b == b)

	case instructions.Or:
		return mc.store(a | b)

	case instructions.And:
		return mc.store(a & b)

	case instructions.TestAttr:
		ok, err := mc.objects.TestAttr(a, b)
		if err != nil {
			return err
		}
		return mc.branch(ok)

	case instructions.SetAttr:
		return mc.objects.SetAttr(a, b)

	case instructions.ClearAttr:
		return mc.objects.ClearAttr(a, b)

	case instructions.Store:
		return mc.replaceVar(uint8(a), b)

	case instructions.InsertObj:
		return mc.objects.Insert(a, b)

	case instructions.Loadw:
		return mc.store(mc.mem.ReadWord(uint32(a + 2*b)))

	case instructions.Loadb:
		return mc.store(uint16(mc.mem.Read(uint32(a + b))))

	case instructions.GetProp:
		return mc.store(mc.objects.GetProp(a, uint8(b)))

	case instructions.GetPropAddr:
		return mc.store(uint16(mc.objects.GetPropAddr(a, uint8(b))))

	case instructions.GetNextProp:
		p, err := mc.objects.GetNextProp(a, uint8(b))
		if err != nil {
			return err
		}
		return mc.store(uint16(p))

	case instructions.Add:
		return mc.store(uint16(int16(a) + int16(b)))

	case instructions.Sub:
		return mc.store(uint16(int16(a) - int16(b)))

	case instructions.Mul:
		return mc.store(uint16(int16(a) * int16(b)))

	case instructions.Div:
		if b == 0 {
			logger.Logf(mc.instance, mc.instance.Tag("cpu"), "division by zero at %#05x", r.Address)
			return mc.store(0)
		}
		return mc.store(uint16(int16(a) / int16(b)))

	case instructions.Mod:
		if b == 0 {
			logger.Logf(mc.instance, mc.instance.Tag("cpu"), "division by zero at %#05x", r.Address)
			return mc.store(0)
		}
		return mc.store(uint16(int16(a) % int16(b)))

	case instructions.Call1s, instructions.Call2s, instructions.CallVs, instructions.CallVs2:
		return mc.call(a, mc.tail(), r.Store, false)

	case instructions.Call1n, instructions.Call2n, instructions.CallVn, instructions.CallVn2:
		return mc.call(a, mc.tail(), 0, true)

	case instructions.SetColour, instructions.SetTrueColour:
		return nil

	case instructions.Throw:
		if b == 0 || int(b) > len(mc.frames) {
			return fmt.Errorf("cpu: throw to frame %d of %d: %w", b, len(mc.frames), ErrCallStack)
		}
		mc.frames = mc.frames[:b]
		return mc.ret(a)

	// 1OP
	case instructions.Jz:
		return mc.branch(a == 0)

	case instructions.GetSibling:
		o := mc.objects.Sibling(a)
		if err := mc.store(o); err != nil {
			return err
		}
		return mc.branch(o != 0)

	case instructions.GetChild:
		o := mc.objects.Child(a)
		if err := mc.store(o); err != nil {
			return err
		}
		return mc.branch(o != 0)

	case instructions.GetParent:
		return mc.store(mc.objects.Parent(a))

	case instructions.GetPropLen:
		return mc.store(uint16(mc.objects.GetPropLen(uint32(a))))

	case instructions.Inc:
		return mc.replaceVar(uint8(a), mc.peekVar(uint8(a))+1)

	case instructions.Dec:
		return mc.replaceVar(uint8(a), mc.peekVar(uint8(a))-1)

	case instructions.PrintAddr:
		mc.printText(uint32(a))
		return nil

	case instructions.RemoveObj:
		return mc.objects.Remove(a)

	case instructions.PrintObj:
		if addr, n := mc.objects.ShortName(a); n > 0 {
			mc.printText(addr)
		}
		return nil

	case instructions.Ret:
		return mc.ret(a)

	case instructions.Jump:
		mc.PC = uint32(int64(mc.PC) + int64(int16(a)) - 2)
		return nil

	case instructions.PrintPaddr:
		mc.printText(mc.hdr.PackedAddress(a, header.String))
		return nil

	case instructions.Load:
		return mc.store(mc.peekVar(uint8(a)))

	case instructions.Not:
		return mc.store(^a)

	// 0OP
	case instructions.Rtrue:
		return mc.ret(1)

	case instructions.Rfalse:
		return mc.ret(0)

	case instructions.Print:
		mc.printText(r.TextAddr)
		return nil

	case instructions.PrintRet:
		mc.printText(r.TextAddr)
		mc.printZSCII(zstring.ZSCIINewline)
		return mc.ret(1)

	case instructions.Save:
		return mc.save()

	case instructions.Restore:
		return mc.restore()

	case instructions.Restart:
		return mc.Restart()

	case instructions.RetPopped:
		return mc.ret(mc.pop())

	case instructions.Pop:
		mc.pop()
		return nil

	case instructions.Catch:
		return mc.store(uint16(len(mc.frames)))

	case instructions.Quit:
		mc.state = Halted
		return nil

	case instructions.NewLine:
		mc.printZSCII(zstring.ZSCIINewline)
		return nil

	case instructions.ShowStatus:
		if mc.hdr.Version <= 3 {
			mc.updateStatus()
		}
		return nil

	case instructions.Verify:
		return mc.branch(header.Checksum(mc.mem.Original(), mc.hdr.FileLength) == mc.hdr.Checksum)

	case instructions.Piracy:
		return mc.branch(true)

	// VAR
	case instructions.Storew:
		return mc.mem.WriteWord(uint32(a+2*b), c)

	case instructions.Storeb:
		return mc.mem.Write(uint32(a+b), uint8(c))

	case instructions.PutProp:
		return mc.objects.PutProp(a, uint8(b), c)

	case instructions.Read:
		return mc.read()

	case instructions.ReadChar:
		return mc.readChar()

	case instructions.PrintChar:
		mc.printZSCII(a)
		return nil

	case instructions.PrintNum:
		mc.printNumber(a)
		return nil

	case instructions.Random:
		n := int16(a)
		switch {
		case n > 0:
			return mc.store(uint16(mc.instance.Random.IntN(int(n)) + 1))
		case n == 0:
			mc.instance.Random.Reseed()
		default:
			mc.instance.Random.Seed(uint64(-int(n)))
		}
		return mc.store(0)

	case instructions.Push:
		mc.push(a)
		return nil

	case instructions.Pull:
		if r.Defn.Store {
			// version 6 pulls from an optional user stack into the store variable
			if mc.args() > 0 {
				slots := mc.mem.ReadWord(uint32(a)) + 1
				if err := mc.mem.WriteWord(uint32(a), slots); err != nil {
					return err
				}
				return mc.store(mc.mem.ReadWord(uint32(a) + 2*uint32(slots)))
			}
			return mc.store(mc.pop())
		}
		return mc.replaceVar(uint8(a), mc.pop())

	case instructions.SplitWindow:
		mc.splitWindow(int(a))
		return nil

	case instructions.SetWindow:
		mc.setWindow(int(a))
		return nil

	case instructions.EraseWindow:
		mc.eraseWindow(int16(a))
		return nil

	case instructions.EraseLine:
		if a == 1 && mc.out.window == 1 {
			mc.out.upper.eraseLine()
		}
		return nil

	case instructions.SetCursor:
		mc.setCursor(int(int16(a)), int(int16(b)))
		return nil

	case instructions.GetCursor:
		line, column := mc.cursor()
		if err := mc.mem.WriteWord(uint32(a), uint16(line)); err != nil {
			return err
		}
		return mc.mem.WriteWord(uint32(a)+2, uint16(column))

	case instructions.SetTextStyle, instructions.BufferMode, instructions.InputStream, instructions.SoundEffect:
		return nil

	case instructions.OutputStream:
		return mc.outputStream(int16(a), b)

	case instructions.ScanTable:
		return mc.scanTable()

	case instructions.Tokenise:
		return mc.tokeniseOp()

	case instructions.EncodeText:
		return mc.encodeText(uint32(a), int(b), uint32(c), uint32(mc.arg(3)))

	case instructions.CopyTable:
		return mc.copyTable(uint32(a), uint32(b), int16(c))

	case instructions.PrintTable:
		mc.printTable()
		return nil

	case instructions.CheckArgCount:
		return mc.branch(int(a) <= mc.top().argCount)

	// EXT
	case instructions.LogShift:
		return mc.store(logShift(a, int16(b)))

	case instructions.ArtShift:
		return mc.store(artShift(a, int16(b)))

	case instructions.SetFont:
		return mc.store(mc.setFont(a))

	case instructions.SaveUndo:
		return mc.saveUndo()

	case instructions.RestoreUndo:
		return mc.restoreUndo()

	case instructions.PrintUnicode:
		mc.printRune(rune(a))
		return nil

	case instructions.CheckUnicode:
		if _, ok := mc.codec.RuneToZSCII(rune(a)); ok {
			return mc.store(3)
		}
		return mc.store(boolToWord(mc.codec.CanPrint(rune(a))))

	// version 6
	case instructions.PushStack:
		slots := mc.mem.ReadWord(uint32(b))
		if slots == 0 {
			return mc.branch(false)
		}
		if err := mc.mem.WriteWord(uint32(b)+2*uint32(slots), a); err != nil {
			return err
		}
		if err := mc.mem.WriteWord(uint32(b), slots-1); err != nil {
			return err
		}
		return mc.branch(true)

	case instructions.PopStack:
		if mc.args() > 1 {
			return mc.mem.WriteWord(uint32(b), mc.mem.ReadWord(uint32(b))+a)
		}
		for range a {
			mc.pop()
		}
		return nil

	case instructions.PrintForm:
		mc.printForm(uint32(a))
		return nil

	case instructions.ReadMouse:
		for i := range uint32(4) {
			if err := mc.mem.WriteWord(uint32(a)+2*i, 0); err != nil {
				return err
			}
		}
		return nil

	case instructions.PictureData, instructions.MakeMenu:
		return mc.branch(false)

	case instructions.GetWindProp, instructions.BufferScreen:
		return mc.store(0)

	case instructions.DrawPicture, instructions.ErasePicture, instructions.SetMargins,
		instructions.MoveWindow, instructions.WindowSize, instructions.WindowStyle,
		instructions.ScrollWindow, instructions.MouseWindow, instructions.PutWindProp,
		instructions.PictureTable:
		return nil
	}

	return fmt.Errorf("cpu: %s has no implementation: %w", r.Defn.Mnemonic, ErrUnknownOpcode)
}

func logShift(v uint16, places int16) uint16 {
	switch {
	case places >= 16 || places <= -16:
		return 0
	case places >= 0:
		return v << places
	}
	return v >> -places
}

func artShift(v uint16, places int16) uint16 {
	switch {
	case places >= 16:
		return 0
	case places >= 0:
		return v << places
	case places <= -16:
		places = -15
	}
	return uint16(int16(v) >> -places)
}
