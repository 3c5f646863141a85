package hwio

import "fmt"

// radixTree is a two-level lookup table over the 16-bit address space: the
// high byte selects a page, the low byte an entry within it. Pages are only
// allocated once something is mapped into them.
type radixTree struct {
	pages [256]*[256]BankIO8
}

// InsertRange maps io on [begin, end]. It fails without modifying the tree if
// any address in the range is already mapped.
func (t *radixTree) InsertRange(begin, end uint16, io BankIO8) error {
	if end < begin {
		return fmt.Errorf("invalid range %04X-%04X", begin, end)
	}
	for a := int(begin); a <= int(end); a++ {
		if prev := t.Search(uint16(a)); prev != nil {
			return fmt.Errorf("overlapping mapping at %04X (range %04X-%04X)", a, begin, end)
		}
	}
	for a := int(begin); a <= int(end); a++ {
		page := &t.pages[a>>8]
		if *page == nil {
			*page = new([256]BankIO8)
		}
		(*page)[a&0xFF] = io
	}
	return nil
}

func (t *radixTree) RemoveRange(begin, end uint16) {
	for a := int(begin); a <= int(end); a++ {
		if page := t.pages[a>>8]; page != nil {
			page[a&0xFF] = nil
		}
	}
}

func (t *radixTree) Search(addr uint16) BankIO8 {
	page := t.pages[addr>>8]
	if page == nil {
		return nil
	}
	return page[addr&0xFF]
}
