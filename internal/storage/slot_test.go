package storage

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(s string) *string { return &s }

func TestSlotInitialState(t *testing.T) {
	slot := NewSlot()

	value, ok := slot.Read()
	assert.False(t, ok)
	assert.Equal(t, "", value)
	assert.False(t, slot.IsSet())
	assert.Zero(t, slot.Stats().Writes)
}

func TestSlotSaveThenRead(t *testing.T) {
	tests := []string{"hello", "", "with spaces and ünicode", "{\"json\": true}"}

	for _, text := range tests {
		t.Run(fmt.Sprintf("%q", text), func(t *testing.T) {
			slot := NewSlot()
			slot.Save(ptr(text))

			value, ok := slot.Read()
			assert.True(t, ok)
			assert.Equal(t, text, value)
		})
	}
}

func TestSlotLastWriteWins(t *testing.T) {
	slot := NewSlot()
	slot.Save(ptr("a"))
	slot.Save(ptr("b"))

	value, ok := slot.Read()
	assert.True(t, ok)
	assert.Equal(t, "b", value)
	assert.Equal(t, uint64(2), slot.Stats().Writes)
	assert.False(t, slot.Stats().LastWrite.IsZero())
}

func TestSlotReadIsIdempotent(t *testing.T) {
	slot := NewSlot()
	slot.Save(ptr("same"))

	first, _ := slot.Read()
	second, _ := slot.Read()
	assert.Equal(t, first, second)
	assert.Equal(t, uint64(1), slot.Stats().Writes)
}

func TestSlotSaveAbsent(t *testing.T) {
	slot := NewSlot()
	slot.Save(ptr("before"))
	slot.Save(nil)

	value, ok := slot.Read()
	assert.False(t, ok)
	assert.Equal(t, "", value)
	assert.True(t, slot.IsSet())
}

func TestSlotCopiesInput(t *testing.T) {
	slot := NewSlot()
	text := "original"
	slot.Save(&text)
	text = "mutated"

	value, _ := slot.Read()
	assert.Equal(t, "original", value)
}

func TestSlotConcurrentSaves(t *testing.T) {
	slot := NewSlot()
	written := make(map[string]bool)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		text := fmt.Sprintf("value-%d", i)
		written[text] = true
		wg.Add(1)
		go func() {
			defer wg.Done()
			slot.Save(&text)
			slot.Read()
		}()
	}
	wg.Wait()

	value, ok := slot.Read()
	assert.True(t, ok)
	assert.True(t, written[value], "final value %q was never written", value)
	assert.Equal(t, uint64(50), slot.Stats().Writes)
}
