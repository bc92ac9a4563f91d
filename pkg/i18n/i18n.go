// Package i18n holds the display-language tables. Pure data: a fixed message
// schema per language code, plus the preference resolution heuristic.
package i18n

import (
	"os"
	"strings"
)

// DefaultLanguage is the final fallback.
const DefaultLanguage = "en"

// Copy is the fixed schema of message templates the dashboard renders.
type Copy struct {
	LanguageLabel string
	Eyebrow       string

	ChipChain    string
	ChipContract string
	ChipRPC      string
	ChipNotSet   string

	StatsTitle         string
	Balance            string
	RequiredSignatures string
	Owners             string
	Transactions       string

	Refresh     string
	Refreshing  string
	ClearStatus string
	Create      string
	SendDeposit string
	Confirm     string
	Revoke      string
	Execute     string

	ConfigTitle     string
	ContractAddress string
	ChainIDLabel    string
	RPCURLLabel     string
	ConfigHint      string

	SignerTitle   string
	SignerAccount string
	SignerChain   string
	ChainWarning  string
	NoSigner      string

	OwnersTitle string
	OwnersEmpty string

	CreateTitle string
	CreateTo    string
	CreateValue string
	CreateData  string

	DepositTitle string
	DepositValue string
	DepositHint  string

	TxTitle         string
	TxEmpty         string
	TxLabel         string
	TxTo            string
	TxValue         string
	TxConfirmations string
	TxExecuted      string
	Yes             string
	No              string
	TxData          string

	ActionCreate  string
	ActionConfirm string
	ActionRevoke  string
	ActionExecute string
	ActionDeposit string

	StatusSignerMissing    string
	StatusSetContractFirst string
	StatusInvalidRecipient string
	StatusDataMustBeHex    string
	StatusInvalidAmount    string
	StatusBusy             string
	StatusActionSent       string // %s action label, %s tx hash
	StatusActionConfirmed  string // %s action label
	StatusCopied           string
	StatusCopyFailed       string
	StatusUnknownError     string
	StatusUnexpectedError  string
}

var tables = map[string]Copy{
	"en": {
		LanguageLabel: "Language",
		Eyebrow:       "MultiSig Wallet",

		ChipChain:    "Chain",
		ChipContract: "Contract",
		ChipRPC:      "RPC",
		ChipNotSet:   "Not set",

		StatsTitle:         "Live status",
		Balance:            "Balance",
		RequiredSignatures: "Required signatures",
		Owners:             "Owners",
		Transactions:       "Transactions",

		Refresh:     "Refresh",
		Refreshing:  "Refreshing...",
		ClearStatus: "Clear status",
		Create:      "Create",
		SendDeposit: "Send deposit",
		Confirm:     "Confirm",
		Revoke:      "Revoke",
		Execute:     "Execute",

		ConfigTitle:     "Configuration",
		ContractAddress: "Contract address",
		ChainIDLabel:    "Chain id",
		RPCURLLabel:     "RPC URL (optional)",
		ConfigHint:      "Provide the deployed contract address and the chain you used for deployment. The panel re-syncs as soon as the address is valid.",

		SignerTitle:   "Signer",
		SignerAccount: "Account",
		SignerChain:   "Endpoint chain",
		ChainWarning:  "Endpoint chain id does not match the configured chain.",
		NoSigner:      "No signing key loaded. Set PRIVATE_KEY to send transactions.",

		OwnersTitle: "Owners",
		OwnersEmpty: "No owners loaded yet.",

		CreateTitle: "Create transaction",
		CreateTo:    "Recipient address",
		CreateValue: "Value (ETH)",
		CreateData:  "Data (hex)",

		DepositTitle: "Deposit",
		DepositValue: "Value (ETH)",
		DepositHint:  "Deposit ETH directly to the contract balance so owners can execute outgoing transactions.",

		TxTitle:         "Transactions",
		TxEmpty:         "No transactions created yet.",
		TxLabel:         "Tx",
		TxTo:            "To",
		TxValue:         "Value",
		TxConfirmations: "Confirmations",
		TxExecuted:      "Executed",
		Yes:             "Yes",
		No:              "No",
		TxData:          "Data",

		ActionCreate:  "Create transaction",
		ActionConfirm: "Confirm transaction",
		ActionRevoke:  "Revoke confirmation",
		ActionExecute: "Execute transaction",
		ActionDeposit: "Deposit",

		StatusSignerMissing:    "No signing key loaded. Set PRIVATE_KEY first.",
		StatusSetContractFirst: "Set a valid contract address first.",
		StatusInvalidRecipient: "Recipient address is invalid.",
		StatusDataMustBeHex:    "Data must be even-length hex starting with 0x.",
		StatusInvalidAmount:    "Amount must be a non-negative decimal number.",
		StatusBusy:             "Another action is still in flight.",
		StatusActionSent:       "%s sent: %s",
		StatusActionConfirmed:  "%s confirmed.",
		StatusCopied:           "Contract address copied to clipboard!",
		StatusCopyFailed:       "Failed to copy to clipboard",
		StatusUnknownError:     "Unknown error",
		StatusUnexpectedError:  "Unexpected error",
	},
	"ru": {
		LanguageLabel: "Язык",
		Eyebrow:       "MultiSig Wallet",

		ChipChain:    "Сеть",
		ChipContract: "Контракт",
		ChipRPC:      "RPC",
		ChipNotSet:   "Не задан",

		StatsTitle:         "Состояние",
		Balance:            "Баланс",
		RequiredSignatures: "Необходимые подписи",
		Owners:             "Владельцы",
		Transactions:       "Транзакции",

		Refresh:     "Обновить",
		Refreshing:  "Обновление...",
		ClearStatus: "Сбросить статус",
		Create:      "Создать",
		SendDeposit: "Отправить депозит",
		Confirm:     "Подписать",
		Revoke:      "Отозвать",
		Execute:     "Исполнить",

		ConfigTitle:     "Конфигурация",
		ContractAddress: "Адрес контракта",
		ChainIDLabel:    "Chain ID",
		RPCURLLabel:     "RPC URL (опционально)",
		ConfigHint:      "Укажите адрес развернутого контракта и сеть деплоя. Панель обновится сразу после ввода корректного адреса.",

		SignerTitle:   "Подписант",
		SignerAccount: "Аккаунт",
		SignerChain:   "Сеть узла",
		ChainWarning:  "Chain ID узла не совпадает с выбранной сетью.",
		NoSigner:      "Ключ подписи не загружен. Задайте PRIVATE_KEY для отправки транзакций.",

		OwnersTitle: "Владельцы",
		OwnersEmpty: "Владельцы пока не загружены.",

		CreateTitle: "Создать транзакцию",
		CreateTo:    "Адрес получателя",
		CreateValue: "Сумма (ETH)",
		CreateData:  "Данные (hex)",

		DepositTitle: "Депозит",
		DepositValue: "Сумма (ETH)",
		DepositHint:  "Пополните баланс контракта ETH, чтобы владельцы могли исполнять исходящие транзакции.",

		TxTitle:         "Транзакции",
		TxEmpty:         "Транзакций пока нет.",
		TxLabel:         "Транзакция",
		TxTo:            "Кому",
		TxValue:         "Сумма",
		TxConfirmations: "Подписей",
		TxExecuted:      "Исполнено",
		Yes:             "Да",
		No:              "Нет",
		TxData:          "Данные",

		ActionCreate:  "Создать транзакцию",
		ActionConfirm: "Подтвердить транзакцию",
		ActionRevoke:  "Отозвать подтверждение",
		ActionExecute: "Исполнить транзакцию",
		ActionDeposit: "Депозит",

		StatusSignerMissing:    "Сначала загрузите ключ подписи (PRIVATE_KEY).",
		StatusSetContractFirst: "Сначала укажите корректный адрес контракта.",
		StatusInvalidRecipient: "Некорректный адрес получателя.",
		StatusDataMustBeHex:    "Данные должны быть hex четной длины и начинаться с 0x.",
		StatusInvalidAmount:    "Сумма должна быть неотрицательным десятичным числом.",
		StatusBusy:             "Предыдущее действие еще выполняется.",
		StatusActionSent:       "Запрос отправлен: %s. Хэш: %s",
		StatusActionConfirmed:  "Запрос подтвержден: %s.",
		StatusCopied:           "Адрес контракта скопирован!",
		StatusCopyFailed:       "Не удалось скопировать в буфер обмена",
		StatusUnknownError:     "Неизвестная ошибка",
		StatusUnexpectedError:  "Непредвиденная ошибка",
	},
}

// Languages lists the supported language codes in display order.
func Languages() []string {
	return []string{"en", "ru"}
}

// Supported reports whether code has a message table.
func Supported(code string) bool {
	_, ok := tables[code]
	return ok
}

// T returns the message table for code, falling back to the default.
func T(code string) Copy {
	if c, ok := tables[code]; ok {
		return c
	}
	return tables[DefaultLanguage]
}

// Resolve picks the display language: the stored preference when supported,
// else the locale environment heuristic, else the default.
func Resolve(stored string) string {
	if Supported(stored) {
		return stored
	}
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" {
			if strings.HasPrefix(strings.ToLower(v), "ru") {
				return "ru"
			}
			break
		}
	}
	return DefaultLanguage
}
