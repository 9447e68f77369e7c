package domain

import (
	"cmp"
	"strings"
)

// Компараторы для сортировки списков в сервисах (под slices.SortFunc).

func DoctorsByNameThenID(a, b Doctor) int {
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// ProductsNewestFirst по id убыванию: новые сверху
func ProductsNewestFirst(a, b Product) int {
	return cmp.Compare(b.ID, a.ID)
}

// TasksMostRecentFirst по дате создания убыванию, при равенстве по id убыванию
func TasksMostRecentFirst(a, b Task) int {
	if c := strings.Compare(b.CreatedDate, a.CreatedDate); c != 0 {
		return c
	}
	return cmp.Compare(b.ID, a.ID)
}

func TargetsByID(a, b Target) int { return cmp.Compare(a.ID, b.ID) }

func UsersByID(a, b User) int { return cmp.Compare(a.ID, b.ID) }

func StockItemsByID(a, b MrStockItem) int { return strings.Compare(a.ID, b.ID) }
