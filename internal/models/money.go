package models

import "fmt"

// Money — денежная сумма в копейках (минорных единицах). Все расчёты ядра
// ведутся в целых копейках, чтобы исключить накопление погрешности float
// при повторных пересчётах во время навигации по мастеру. Перевод в рубли
// выполняется только на границе представления.
type Money int64

// KopecksPerRuble — число минорных единиц в одном рубле.
const KopecksPerRuble = 100

// rateDenominator — знаменатель ставок: ставки хранятся в базисных пунктах
// (1% = 100 б.п.), что позволяет выражать и дробные ставки целым числом.
const rateDenominator = 10_000

// ApplyRate умножает сумму на ставку в базисных пунктах с округлением
// half-up на границе копейки. Налоговая требует детерминированного
// округления, поэтому политика зафиксирована здесь и нигде больше.
func (m Money) ApplyRate(rateBP int64) Money {
	if m <= 0 || rateBP <= 0 {
		return 0
	}
	return Money((int64(m)*rateBP + rateDenominator/2) / rateDenominator)
}

// Rubles возвращает целые рубли и остаток в копейках.
func (m Money) Rubles() (int64, int64) {
	return int64(m) / KopecksPerRuble, int64(m) % KopecksPerRuble
}

// String форматирует сумму как "12345.67 RUB" для логов и отладки.
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d RUB", sign, v/KopecksPerRuble, v%KopecksPerRuble)
}

// FormatRubles форматирует сумму в рублях с разделителем тысяч для
// человекочитаемых ответов API, например "1 000 000,50 ₽".
func (m Money) FormatRubles() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	whole := v / KopecksPerRuble
	frac := v % KopecksPerRuble

	digits := fmt.Sprintf("%d", whole)
	var grouped []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, ' ')
		}
		grouped = append(grouped, d)
	}
	return fmt.Sprintf("%s%s,%02d ₽", sign, grouped, frac)
}
