package state

import (
	"sync"
)

// Manager управляет состояниями пользователей
type Manager struct {
	mu     sync.RWMutex
	states map[int64]*UserData // telegramID -> UserData
}

// NewManager создаёт новый менеджер состояний
func NewManager() *Manager {
	return &Manager{
		states: make(map[int64]*UserData),
	}
}

// GetState получает текущее состояние пользователя
func (sm *Manager) GetState(telegramID int64) UserState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		return userData.State
	}
	return StateNone
}

// SetState устанавливает состояние пользователя
func (sm *Manager) SetState(telegramID int64, state UserState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.ensure(telegramID).State = state
}

// ClearState очищает состояние и все черновики пользователя
func (sm *Manager) ClearState(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, telegramID)
}

// Booking возвращает черновик бронирования или nil
func (sm *Manager) Booking(telegramID int64) *BookingDraft {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		return userData.Booking
	}
	return nil
}

// SetBooking сохраняет черновик бронирования
func (sm *Manager) SetBooking(telegramID int64, draft *BookingDraft) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.ensure(telegramID).Booking = draft
}

// Reschedule возвращает черновик переноса или nil
func (sm *Manager) Reschedule(telegramID int64) *RescheduleDraft {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		return userData.Reschedule
	}
	return nil
}

// SetReschedule сохраняет черновик переноса
func (sm *Manager) SetReschedule(telegramID int64, draft *RescheduleDraft) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.ensure(telegramID).Reschedule = draft
}

// Availability возвращает черновик расписания консультанта или nil
func (sm *Manager) Availability(telegramID int64) *AvailabilityDraft {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		return userData.Availability
	}
	return nil
}

// SetAvailability сохраняет черновик расписания консультанта
func (sm *Manager) SetAvailability(telegramID int64, draft *AvailabilityDraft) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.ensure(telegramID).Availability = draft
}

// Review возвращает черновик отзыва или nil
func (sm *Manager) Review(telegramID int64) *ReviewDraft {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		return userData.Review
	}
	return nil
}

// SetReview сохраняет черновик отзыва
func (sm *Manager) SetReview(telegramID int64, draft *ReviewDraft) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.ensure(telegramID).Review = draft
}

// ensure вызывается только под write-lock
func (sm *Manager) ensure(telegramID int64) *UserData {
	if _, exists := sm.states[telegramID]; !exists {
		sm.states[telegramID] = &UserData{State: StateNone}
	}
	return sm.states[telegramID]
}
