package combat

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCharacterLocks_ReleasesEntries(t *testing.T) {
	locks := newCharacterLocks()

	unlock := locks.lock("b", "a", "b")
	assert.Equal(t, 2, locks.held())
	unlock()
	assert.Equal(t, 0, locks.held())
}

func TestCharacterLocks_OppositeOrderDoesNotDeadlock(t *testing.T) {
	locks := newCharacterLocks()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			unlock := locks.lock("tarl", "kamras")
			counter++
			unlock()
		}()
		go func() {
			defer wg.Done()
			unlock := locks.lock("kamras", "tarl")
			counter++
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
	assert.Equal(t, 0, locks.held())
}

func TestFormatTurn(t *testing.T) {
	assert.Equal(t, "Tarl's turn ends.", FormatTurn("Tarl", &TurnOutput{}))
	assert.Equal(t, "Tarl's turn ends: Bless, Stun wore off.",
		FormatTurn("Tarl", &TurnOutput{Expired: []string{"Bless", "Stun"}}))
	assert.Equal(t, "Tarl's turn ends: recovers 3 hit points (Regeneration, Mend).",
		FormatTurn("Tarl", &TurnOutput{Healed: 3, Healers: []string{"Regeneration", "Mend"}}))
	assert.Equal(t, "Tarl's turn ends: takes 1 damage (Bleed); recovers 1 hit point; Bleed wore off.",
		FormatTurn("Tarl", &TurnOutput{Damaged: 1, Damagers: []string{"Bleed"}, Healed: 1, Expired: []string{"Bleed"}}))
}
