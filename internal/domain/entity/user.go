package entity

// UserState состояние пользователя в диалоге
type UserState string

const (
	StateMainMenu       UserState = "main_menu"       // В главном меню
	StateAwaitingKey    UserState = "awaiting_key"    // Ожидание файла с ключом ответов
	StateAwaitingRoster UserState = "awaiting_roster" // Ожидание списка студентов
	StateAwaitingSheets UserState = "awaiting_sheets" // Ожидание фото бланков
	StateProcessing     UserState = "processing"      // Обработка бланка
)

// User представляет пользователя бота и его сессию проверки
type User struct {
	ID     int64      // Telegram User ID
	ChatID int64      // Telegram Chat ID
	State  UserState  // Текущее состояние пользователя
	Mode   Mode       // Режим проверки
	Key    *AnswerKey // Загруженный ключ ответов
	Roster Roster     // Список студентов (может быть пустым)
	Debug  bool       // Сохранять отладочные картинки
}

// NewUser создаёт нового пользователя с начальным состоянием
func NewUser(userID, chatID int64) *User {
	return &User{
		ID:     userID,
		ChatID: chatID,
		State:  StateMainMenu,
		Mode:   ModeSingle,
	}
}

// SetState обновляет состояние пользователя
func (u *User) SetState(state UserState) {
	u.State = state
}

// SetKey сохраняет ключ ответов и переключает режим под него
func (u *User) SetKey(key *AnswerKey) {
	u.Key = key
	if key != nil {
		u.Mode = key.Mode
	}
}

// Ready готов ли пользователь присылать бланки
func (u *User) Ready() bool {
	return u.Key != nil && u.Key.Mode == u.Mode && u.Key.Len() > 0
}
