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

package instructions

// Operator identifies the operation performed by an instruction. Different
// definitions can share an Operator, for example the variants of save for
// different versions.
type Operator int

// List of valid Operator values.
const (
	Nop Operator = iota

	// 2OP
	Je
	Jl
	Jg
	DecChk
	IncChk
	Jin
	Test
	Or
	And
	TestAttr
	SetAttr
	ClearAttr
	Store
	InsertObj
	Loadw
	Loadb
	GetProp
	GetPropAddr
	GetNextProp
	Add
	Sub
	Mul
	Div
	Mod
	Call2s
	Call2n
	SetColour
	Throw

	// 1OP
	Jz
	GetSibling
	GetChild
	GetParent
	GetPropLen
	Inc
	Dec
	PrintAddr
	Call1s
	RemoveObj
	PrintObj
	Ret
	Jump
	PrintPaddr
	Load
	Not
	Call1n

	// 0OP
	Rtrue
	Rfalse
	Print
	PrintRet
	Save
	Restore
	Restart
	RetPopped
	Pop
	Catch
	Quit
	NewLine
	ShowStatus
	Verify
	Piracy

	// VAR
	CallVs
	Storew
	Storeb
	PutProp
	Read
	PrintChar
	PrintNum
	Random
	Push
	Pull
	SplitWindow
	SetWindow
	CallVs2
	EraseWindow
	EraseLine
	SetCursor
	GetCursor
	SetTextStyle
	BufferMode
	OutputStream
	InputStream
	SoundEffect
	ReadChar
	ScanTable
	CallVn
	CallVn2
	Tokenise
	EncodeText
	CopyTable
	PrintTable
	CheckArgCount

	// EXT
	LogShift
	ArtShift
	SetFont
	SaveUndo
	RestoreUndo
	PrintUnicode
	CheckUnicode
	SetTrueColour

	// EXT (version 6 screen model). accepted but not modelled
	DrawPicture
	PictureData
	ErasePicture
	SetMargins
	MoveWindow
	WindowSize
	WindowStyle
	GetWindProp
	ScrollWindow
	PopStack
	ReadMouse
	MouseWindow
	PushStack
	PutWindProp
	PrintForm
	MakeMenu
	PictureTable
	BufferScreen
)

type flags int

const (
	none   flags = 0
	store  flags = 0x01
	branch flags = 0x02
	text   flags = 0x04
	double flags = 0x08
)

type entry struct {
	min, max uint8
	defn     Definition
}

func op(lo, hi uint8, class Class, number uint8, mnemonic string, operator Operator, effect Effect, f flags) entry {
	return entry{
		min: lo,
		max: hi,
		defn: Definition{
			Class:       class,
			Number:      number,
			Mnemonic:    mnemonic,
			Operator:    operator,
			Effect:      effect,
			Store:       f&store == store,
			Branch:      f&branch == branch,
			Text:        f&text == text,
			DoubleTypes: f&double == double,
		},
	}
}

// the master list of instructions. entries with overlapping version ranges
// for the same class and number are an error
var definitions = []entry{
	op(1, 8, OP2, 1, "je", Je, Compute, branch),
	op(1, 8, OP2, 2, "jl", Jl, Compute, branch),
	op(1, 8, OP2, 3, "jg", Jg, Compute, branch),
	op(1, 8, OP2, 4, "dec_chk", DecChk, Compute, branch),
	op(1, 8, OP2, 5, "inc_chk", IncChk, Compute, branch),
	op(1, 8, OP2, 6, "jin", Jin, Compute, branch),
	op(1, 8, OP2, 7, "test", Test, Compute, branch),
	op(1, 8, OP2, 8, "or", Or, Compute, store),
	op(1, 8, OP2, 9, "and", And, Compute, store),
	op(1, 8, OP2, 10, "test_attr", TestAttr, Compute, branch),
	op(1, 8, OP2, 11, "set_attr", SetAttr, Compute, none),
	op(1, 8, OP2, 12, "clear_attr", ClearAttr, Compute, none),
	op(1, 8, OP2, 13, "store", Store, Compute, none),
	op(1, 8, OP2, 14, "insert_obj", InsertObj, Compute, none),
	op(1, 8, OP2, 15, "loadw", Loadw, Compute, store),
	op(1, 8, OP2, 16, "loadb", Loadb, Compute, store),
	op(1, 8, OP2, 17, "get_prop", GetProp, Compute, store),
	op(1, 8, OP2, 18, "get_prop_addr", GetPropAddr, Compute, store),
	op(1, 8, OP2, 19, "get_next_prop", GetNextProp, Compute, store),
	op(1, 8, OP2, 20, "add", Add, Compute, store),
	op(1, 8, OP2, 21, "sub", Sub, Compute, store),
	op(1, 8, OP2, 22, "mul", Mul, Compute, store),
	op(1, 8, OP2, 23, "div", Div, Compute, store),
	op(1, 8, OP2, 24, "mod", Mod, Compute, store),
	op(4, 8, OP2, 25, "call_2s", Call2s, Subroutine, store),
	op(5, 8, OP2, 26, "call_2n", Call2n, Subroutine, none),
	op(5, 8, OP2, 27, "set_colour", SetColour, Output, none),
	op(5, 8, OP2, 28, "throw", Throw, Return, none),

	op(1, 8, OP1, 0, "jz", Jz, Compute, branch),
	op(1, 8, OP1, 1, "get_sibling", GetSibling, Compute, store|branch),
	op(1, 8, OP1, 2, "get_child", GetChild, Compute, store|branch),
	op(1, 8, OP1, 3, "get_parent", GetParent, Compute, store),
	op(1, 8, OP1, 4, "get_prop_len", GetPropLen, Compute, store),
	op(1, 8, OP1, 5, "inc", Inc, Compute, none),
	op(1, 8, OP1, 6, "dec", Dec, Compute, none),
	op(1, 8, OP1, 7, "print_addr", PrintAddr, Output, none),
	op(4, 8, OP1, 8, "call_1s", Call1s, Subroutine, store),
	op(1, 8, OP1, 9, "remove_obj", RemoveObj, Compute, none),
	op(1, 8, OP1, 10, "print_obj", PrintObj, Output, none),
	op(1, 8, OP1, 11, "ret", Ret, Return, none),
	op(1, 8, OP1, 12, "jump", Jump, Flow, none),
	op(1, 8, OP1, 13, "print_paddr", PrintPaddr, Output, none),
	op(1, 8, OP1, 14, "load", Load, Compute, store),
	op(1, 4, OP1, 15, "not", Not, Compute, store),
	op(5, 8, OP1, 15, "call_1n", Call1n, Subroutine, none),

	op(1, 8, OP0, 0, "rtrue", Rtrue, Return, none),
	op(1, 8, OP0, 1, "rfalse", Rfalse, Return, none),
	op(1, 8, OP0, 2, "print", Print, Output, text),
	op(1, 8, OP0, 3, "print_ret", PrintRet, Return, text),
	op(1, 8, OP0, 4, "nop", Nop, Compute, none),
	op(1, 3, OP0, 5, "save", Save, SaveRestore, branch),
	op(4, 4, OP0, 5, "save", Save, SaveRestore, store),
	op(1, 3, OP0, 6, "restore", Restore, SaveRestore, branch),
	op(4, 4, OP0, 6, "restore", Restore, SaveRestore, store),
	op(1, 8, OP0, 7, "restart", Restart, Flow, none),
	op(1, 8, OP0, 8, "ret_popped", RetPopped, Return, none),
	op(1, 4, OP0, 9, "pop", Pop, Compute, none),
	op(5, 8, OP0, 9, "catch", Catch, Compute, store),
	op(1, 8, OP0, 10, "quit", Quit, Flow, none),
	op(1, 8, OP0, 11, "new_line", NewLine, Output, none),
	op(1, 8, OP0, 12, "show_status", ShowStatus, Output, none),
	op(3, 8, OP0, 13, "verify", Verify, Compute, branch),
	op(5, 8, OP0, 15, "piracy", Piracy, Compute, branch),

	op(1, 3, VAR, 0, "call", CallVs, Subroutine, store),
	op(4, 8, VAR, 0, "call_vs", CallVs, Subroutine, store),
	op(1, 8, VAR, 1, "storew", Storew, Compute, none),
	op(1, 8, VAR, 2, "storeb", Storeb, Compute, none),
	op(1, 8, VAR, 3, "put_prop", PutProp, Compute, none),
	op(1, 4, VAR, 4, "sread", Read, Input, none),
	op(5, 8, VAR, 4, "aread", Read, Input, store),
	op(1, 8, VAR, 5, "print_char", PrintChar, Output, none),
	op(1, 8, VAR, 6, "print_num", PrintNum, Output, none),
	op(1, 8, VAR, 7, "random", Random, Compute, store),
	op(1, 8, VAR, 8, "push", Push, Compute, none),
	op(1, 5, VAR, 9, "pull", Pull, Compute, none),
	op(6, 6, VAR, 9, "pull", Pull, Compute, store),
	op(7, 8, VAR, 9, "pull", Pull, Compute, none),
	op(3, 8, VAR, 10, "split_window", SplitWindow, Output, none),
	op(3, 8, VAR, 11, "set_window", SetWindow, Output, none),
	op(4, 8, VAR, 12, "call_vs2", CallVs2, Subroutine, store|double),
	op(4, 8, VAR, 13, "erase_window", EraseWindow, Output, none),
	op(4, 8, VAR, 14, "erase_line", EraseLine, Output, none),
	op(4, 8, VAR, 15, "set_cursor", SetCursor, Output, none),
	op(4, 8, VAR, 16, "get_cursor", GetCursor, Output, none),
	op(4, 8, VAR, 17, "set_text_style", SetTextStyle, Output, none),
	op(4, 8, VAR, 18, "buffer_mode", BufferMode, Output, none),
	op(3, 8, VAR, 19, "output_stream", OutputStream, Output, none),
	op(3, 8, VAR, 20, "input_stream", InputStream, Input, none),
	op(3, 8, VAR, 21, "sound_effect", SoundEffect, Output, none),
	op(4, 8, VAR, 22, "read_char", ReadChar, Input, store),
	op(4, 8, VAR, 23, "scan_table", ScanTable, Compute, store|branch),
	op(5, 8, VAR, 24, "not", Not, Compute, store),
	op(5, 8, VAR, 25, "call_vn", CallVn, Subroutine, none),
	op(5, 8, VAR, 26, "call_vn2", CallVn2, Subroutine, double),
	op(5, 8, VAR, 27, "tokenise", Tokenise, Compute, none),
	op(5, 8, VAR, 28, "encode_text", EncodeText, Compute, none),
	op(5, 8, VAR, 29, "copy_table", CopyTable, Compute, none),
	op(5, 8, VAR, 30, "print_table", PrintTable, Output, none),
	op(5, 8, VAR, 31, "check_arg_count", CheckArgCount, Compute, branch),

	op(5, 8, EXT, 0, "save", Save, SaveRestore, store),
	op(5, 8, EXT, 1, "restore", Restore, SaveRestore, store),
	op(5, 8, EXT, 2, "log_shift", LogShift, Compute, store),
	op(5, 8, EXT, 3, "art_shift", ArtShift, Compute, store),
	op(5, 8, EXT, 4, "set_font", SetFont, Output, store),
	op(6, 6, EXT, 5, "draw_picture", DrawPicture, Output, none),
	op(6, 6, EXT, 6, "picture_data", PictureData, Compute, branch),
	op(6, 6, EXT, 7, "erase_picture", ErasePicture, Output, none),
	op(6, 6, EXT, 8, "set_margins", SetMargins, Output, none),
	op(5, 8, EXT, 9, "save_undo", SaveUndo, SaveRestore, store),
	op(5, 8, EXT, 10, "restore_undo", RestoreUndo, SaveRestore, store),
	op(5, 8, EXT, 11, "print_unicode", PrintUnicode, Output, none),
	op(5, 8, EXT, 12, "check_unicode", CheckUnicode, Compute, store),
	op(5, 8, EXT, 13, "set_true_colour", SetTrueColour, Output, none),
	op(6, 6, EXT, 16, "move_window", MoveWindow, Output, none),
	op(6, 6, EXT, 17, "window_size", WindowSize, Output, none),
	op(6, 6, EXT, 18, "window_style", WindowStyle, Output, none),
	op(6, 6, EXT, 19, "get_wind_prop", GetWindProp, Compute, store),
	op(6, 6, EXT, 20, "scroll_window", ScrollWindow, Output, none),
	op(6, 6, EXT, 21, "pop_stack", PopStack, Compute, none),
	op(6, 6, EXT, 22, "read_mouse", ReadMouse, Input, none),
	op(6, 6, EXT, 23, "mouse_window", MouseWindow, Input, none),
	op(6, 6, EXT, 24, "push_stack", PushStack, Compute, branch),
	op(6, 6, EXT, 25, "put_wind_prop", PutWindProp, Output, none),
	op(6, 6, EXT, 26, "print_form", PrintForm, Output, none),
	op(6, 6, EXT, 27, "make_menu", MakeMenu, Input, branch),
	op(6, 6, EXT, 28, "picture_table", PictureTable, Output, none),
	op(6, 6, EXT, 29, "buffer_screen", BufferScreen, Output, store),
}
