// Package jitter добавляет случайность в интервалы повторов,
// чтобы переподключения нескольких экземпляров не совпадали по времени.
package jitter

import (
	"math/rand/v2"
	"time"
)

// DefaultJitter — стандартный коэффициент джиттера (50%)
const DefaultJitter = 0.5

// Duration возвращает d с применённым джиттером в диапазоне [d, d*(1+factor)].
func Duration(d time.Duration, factor float64) time.Duration {
	return DurationWithRand(d, factor, rand.Float64)
}

// DurationWithRand работает как Duration, но берёт случайные числа в [0, 1) из float64Fn.
func DurationWithRand(d time.Duration, factor float64, float64Fn func() float64) time.Duration {
	if factor <= 0 {
		return d
	}
	return d + time.Duration(float64Fn()*factor*float64(d))
}

// Backoff вычисляет экспоненциальную задержку без джиттера:
// base * 2^attempt, но не больше max. attempt считается с нуля.
func Backoff(base, max time.Duration, attempt int) time.Duration {
	backoff := base
	for i := 0; i < attempt; i++ {
		backoff *= 2
		if backoff >= max {
			return max
		}
	}
	if backoff > max {
		return max
	}
	return backoff
}

// ExponentialBackoff применяет джиттер к Backoff.
func ExponentialBackoff(base, max time.Duration, attempt int, factor float64) time.Duration {
	return Duration(Backoff(base, max, attempt), factor)
}
