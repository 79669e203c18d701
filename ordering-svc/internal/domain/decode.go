package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Numeric order fields accept quoted numbers; text fields accept bare numbers.

type looseFloat float64

func (f *looseFloat) UnmarshalJSON(data []byte) error {
	text, err := numericText(data)
	if err != nil {
		return err
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("%q is not a number", text)
	}
	*f = looseFloat(v)
	return nil
}

type looseInt int

func (i *looseInt) UnmarshalJSON(data []byte) error {
	text, err := numericText(data)
	if err != nil {
		return err
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		return fmt.Errorf("%q is not an integer", text)
	}
	*i = looseInt(v)
	return nil
}

type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = looseString(v)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected a string, got %s", data)
	}
	*s = looseString(n.String())
	return nil
}

func numericText(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return "", err
		}
		return strings.TrimSpace(v), nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", fmt.Errorf("expected a number, got %s", data)
	}
	return n.String(), nil
}

func (i *OrderItem) UnmarshalJSON(data []byte) error {
	type plain OrderItem
	aux := struct {
		*plain
		Price    *looseFloat  `json:"price"`
		Quantity *looseInt    `json:"quantity"`
		ItemID   *looseString `json:"id"`
	}{plain: (*plain)(i)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if aux.Price != nil {
		i.Price = float64(*aux.Price)
	}
	if aux.Quantity != nil {
		i.Quantity = int(*aux.Quantity)
	}
	if aux.ItemID != nil {
		i.ItemID = string(*aux.ItemID)
	}
	return nil
}

func (o *Order) UnmarshalJSON(data []byte) error {
	type plain Order
	aux := struct {
		*plain
		Subtotal    *looseFloat  `json:"subtotal"`
		Tax         *looseFloat  `json:"tax"`
		Total       *looseFloat  `json:"total"`
		TableNumber *looseInt    `json:"tableNumber"`
		PhoneNumber *looseString `json:"phonenumber"`
		OrderNumber *looseString `json:"orderNumber"`
		UserID      *looseString `json:"userId"`
	}{plain: (*plain)(o)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	o.Subtotal = floatPtr(aux.Subtotal)
	o.Tax = floatPtr(aux.Tax)
	o.Total = floatPtr(aux.Total)
	if aux.TableNumber != nil {
		v := int(*aux.TableNumber)
		o.TableNumber = &v
	} else {
		o.TableNumber = nil
	}
	if aux.PhoneNumber != nil {
		o.PhoneNumber = string(*aux.PhoneNumber)
	}
	if aux.OrderNumber != nil {
		o.OrderNumber = string(*aux.OrderNumber)
	}
	if aux.UserID != nil {
		o.UserID = string(*aux.UserID)
	}
	return nil
}

func floatPtr(f *looseFloat) *float64 {
	if f == nil {
		return nil
	}
	v := float64(*f)
	return &v
}
