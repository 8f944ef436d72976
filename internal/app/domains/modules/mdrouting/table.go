package mdrouting

import (
	"fmt"

	"github.com/abdullahiqbal07/Inventory-02/internal/app/config"
)

// Route 供应商路由信息
type Route struct {
	Supplier      string
	AccountNumber string
	Email         string
}

// Table 供应商路由表，构造后只读
type Table struct {
	routes map[string]Route
}

// NewTable 从配置构建路由表，重名时后者覆盖前者
func NewTable(suppliers []config.SupplierConfig) *Table {
	routes := make(map[string]Route, len(suppliers))
	for _, s := range suppliers {
		routes[s.Name] = Route{Supplier: s.Name, AccountNumber: s.AccountNumber, Email: s.Email}
	}
	return &Table{routes: routes}
}

// Lookup 按供应商名查路由
func (t *Table) Lookup(supplier string) (Route, bool) {
	r, ok := t.routes[supplier]
	return r, ok
}

// Subject 标准下单邮件主题，无账号时不带账号
func (t *Table) Subject(supplier, poNumber string) string {
	if r, ok := t.routes[supplier]; ok && r.AccountNumber != "" {
		return fmt.Sprintf("Order Request for Account #%s - PO %s", r.AccountNumber, poNumber)
	}
	return fmt.Sprintf("Order Request - PO %s", poNumber)
}

// Recipients 内部收件人加上供应商联系人（去重，保持顺序）
func (t *Table) Recipients(internal []string, supplier string) []string {
	recipients := make([]string, 0, len(internal)+1)
	seen := make(map[string]struct{}, len(internal)+1)
	add := func(addr string) {
		if addr == "" {
			return
		}
		if _, dup := seen[addr]; dup {
			return
		}
		seen[addr] = struct{}{}
		recipients = append(recipients, addr)
	}

	for _, addr := range internal {
		add(addr)
	}
	if r, ok := t.routes[supplier]; ok {
		add(r.Email)
	}
	return recipients
}
