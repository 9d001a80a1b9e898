package ui

// Package ui provides user interface components

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeySearchPlaceholder = "search_placeholder"
	KeyAddCoin           = "add_coin"
	KeyAddCoinTitle      = "add_coin_title"
	KeyAddCoinHint       = "add_coin_hint"
	KeyNoResults         = "no_results"
	KeyRefresh           = "refresh"
	KeyLoading           = "loading"
	KeyLastUpdated       = "last_updated"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyBackendURL        = "backend_url"
	KeyPollInterval      = "poll_interval"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyClose             = "close"
	KeySettingsSaved     = "settings_saved"
	KeyRestartNote       = "restart_note"
	KeyCoinAdded         = "coin_added"
	KeyCoinRemoved       = "coin_removed"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "Crypto Tracker",
		KeySearchPlaceholder: "Search coins (BTC, Ethereum...)",
		KeyAddCoin:           "Add",
		KeyAddCoinTitle:      "Add Cryptocurrency",
		KeyAddCoinHint:       "Type a symbol or name (at least 2 characters)",
		KeyNoResults:         "No matching cryptocurrencies",
		KeyRefresh:           "Refresh",
		KeyLoading:           "Loading cryptocurrencies...",
		KeyLastUpdated:       "Last updated",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyBackendURL:        "Backend URL",
		KeyPollInterval:      "Refresh interval (seconds)",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyClose:             "Close",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyRestartNote:       "Connection changes apply after restart.",
		KeyCoinAdded:         "added to your dashboard",
		KeyCoinRemoved:       "removed from your dashboard",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "Крипто Трекер",
		KeySearchPlaceholder: "Поиск монет (BTC, Ethereum...)",
		KeyAddCoin:           "Добавить",
		KeyAddCoinTitle:      "Добавить криптовалюту",
		KeyAddCoinHint:       "Введите символ или название (минимум 2 символа)",
		KeyNoResults:         "Совпадений не найдено",
		KeyRefresh:           "Обновить",
		KeyLoading:           "Загрузка криптовалют...",
		KeyLastUpdated:       "Обновлено",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeyBackendURL:        "Адрес сервера",
		KeyPollInterval:      "Интервал обновления (секунды)",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeyClose:             "Закрыть",
		KeySettingsSaved:     "Настройки успешно сохранены!",
		KeyRestartNote:       "Изменения подключения вступят в силу после перезапуска.",
		KeyCoinAdded:         "добавлена на панель",
		KeyCoinRemoved:       "удалена с панели",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "Crypto Tracker",
		KeySearchPlaceholder: "Buscar moedas (BTC, Ethereum...)",
		KeyAddCoin:           "Adicionar",
		KeyAddCoinTitle:      "Adicionar Criptomoeda",
		KeyAddCoinHint:       "Digite um símbolo ou nome (mínimo 2 caracteres)",
		KeyNoResults:         "Nenhuma criptomoeda encontrada",
		KeyRefresh:           "Atualizar",
		KeyLoading:           "Carregando criptomoedas...",
		KeyLastUpdated:       "Atualizado",
		KeySettings:          "Configurações",
		KeyFile:              "Arquivo",
		KeyLanguage:          "Idioma",
		KeyBackendURL:        "URL do servidor",
		KeyPollInterval:      "Intervalo de atualização (segundos)",
		KeySave:              "Salvar",
		KeyCancel:            "Cancelar",
		KeyClose:             "Fechar",
		KeySettingsSaved:     "Configurações salvas com sucesso!",
		KeyRestartNote:       "Alterações de conexão se aplicam após reiniciar.",
		KeyCoinAdded:         "adicionada ao painel",
		KeyCoinRemoved:       "removida do painel",
	}
}
