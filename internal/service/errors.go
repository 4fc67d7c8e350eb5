package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrEmptyCart           = fmt.Errorf("%w: keranjang masih kosong", ErrInvalidInput)
	ErrInsufficientPayment = errors.New("uang kurang")
	ErrInsufficientStock   = errors.New("stok tidak cukup")
	ErrProductNotFound     = errors.New("product not found")
	ErrSaleNotFound        = errors.New("sale not found")
)
