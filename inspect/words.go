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

package inspect

import (
	"slices"
	"strings"
)

// Categories of dictionary words.
type Categories struct {
	Verbs        []string
	Nouns        []string
	Adjectives   []string
	Directions   []string
	Prepositions []string
	Other        []string

	// the categories were decided from the dictionary data rather than by
	// recognising common words
	FromData bool
}

// word types in the first data byte of Infocom dictionary entries
const (
	typeVerb        = 0x41
	typeNoun        = 0x80
	typeAdjective   = 0x22
	typeCompass     = 0x13
	typeVertical    = 0x18
	typeDirection   = 0x33
	typePreposition = 0x08
	typeBuzz        = 0x04
)

func isWordType(b byte) bool {
	switch b {
	case typeVerb, typeNoun, typeAdjective, typeCompass, typeVertical, typeDirection, typePreposition, typeBuzz:
		return true
	}
	return false
}

// Words returns every word in the dictionary in the order they are stored.
func (in *Inspector) Words() []string {
	entries := in.eng.CPU.Dictionary().Entries()
	words := make([]string, 0, len(entries))
	for _, e := range entries {
		words = append(words, strings.TrimSpace(e.Word))
	}
	return words
}

// Categorise the dictionary words. If any entry has a recognised word type
// in its data then the data is used for every word. Otherwise the words are
// categorised by recognising common words.
func (in *Inspector) Categorise() Categories {
	entries := in.eng.CPU.Dictionary().Entries()

	fromData := false
	for _, e := range entries {
		if len(e.Data) > 0 && isWordType(e.Data[0]) {
			fromData = true
			break
		}
	}

	if !fromData {
		return CategoriseWords(in.Words())
	}

	c := Categories{FromData: true}
	for _, e := range entries {
		w := strings.TrimSpace(e.Word)
		var t byte
		if len(e.Data) > 0 {
			t = e.Data[0]
		}
		switch t {
		case typeVerb:
			c.Verbs = append(c.Verbs, w)
		case typeNoun:
			c.Nouns = append(c.Nouns, w)
		case typeAdjective:
			c.Adjectives = append(c.Adjectives, w)
		case typeCompass, typeVertical, typeDirection:
			c.Directions = append(c.Directions, w)
		case typePreposition:
			c.Prepositions = append(c.Prepositions, w)
		default:
			c.Other = append(c.Other, w)
		}
	}
	return c
}

var knownDirections = []string{
	"n", "s", "e", "w", "north", "south", "east", "west",
	"ne", "nw", "se", "sw", "northeast", "northwest", "southeast", "southwest",
	"up", "down", "u", "d", "in", "out", "enter", "exit",
	"northe", "northw", "southe", "southw",
}

var knownVerbs = []string{
	"take", "get", "drop", "put", "give", "throw", "open", "close", "shut",
	"read", "examine", "look", "x", "l", "push", "pull", "turn", "move",
	"lift", "light", "unlock", "lock", "eat", "drink", "wear", "remove",
	"attack", "kill", "hit", "tie", "untie", "pour", "fill", "empty",
	"climb", "break", "cut", "dig", "wait", "z", "jump", "sleep",
	"wake", "save", "restore", "quit", "inventory", "i", "score",
	"ask", "tell", "say", "shout", "yell", "whisper", "sing",
	"swim", "wave", "point", "rub", "touch", "feel", "smell", "listen",
	"taste", "search", "find", "follow", "buy", "sell", "count",
}

var knownPrepositions = []string{
	"to", "at", "in", "on", "with", "from", "into", "onto", "under",
	"behind", "through", "about", "for", "around", "across", "over",
	"off", "out", "up", "down", "away", "toward", "towards",
}

var knownArticles = []string{"a", "an", "the", "some", "any", "all", "my", "your"}

// CategoriseWords by recognising common words. Dictionary words are
// truncated so a word is a verb if its first six letters match a known verb.
// Unrecognised words are assumed to be nouns.
func CategoriseWords(words []string) Categories {
	var c Categories
	for _, w := range words {
		l := strings.ToLower(w)
		switch {
		case slices.Contains(knownDirections, l):
			c.Directions = append(c.Directions, w)
		case isKnownVerb(l):
			c.Verbs = append(c.Verbs, w)
		case slices.Contains(knownPrepositions, l):
			c.Prepositions = append(c.Prepositions, w)
		case slices.Contains(knownArticles, l):
			c.Other = append(c.Other, w)
		default:
			c.Nouns = append(c.Nouns, w)
		}
	}
	return c
}

func isKnownVerb(w string) bool {
	if slices.Contains(knownVerbs, w) {
		return true
	}
	for _, v := range knownVerbs {
		if len(v) > 6 && v[:6] == w {
			return true
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	s = strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
