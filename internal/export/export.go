package export

import (
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/pizzalab/pizza-service/internal/models"
)

// OrdersXML renders orders as an XML document for downstream reporting
func OrdersXML(orders []models.Order) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("orders")
	root.CreateAttr("count", strconv.Itoa(len(orders)))

	for _, o := range orders {
		e := root.CreateElement("order")
		e.CreateAttr("id", strconv.FormatInt(o.ID, 10))
		e.CreateElement("quantity").SetText(strconv.Itoa(o.Quantity))
		e.CreateElement("pizza_size").SetText(string(o.PizzaSize))
		e.CreateElement("order_status").SetText(string(o.Status))
		e.CreateElement("user_id").SetText(strconv.FormatInt(o.UserID, 10))
		e.CreateElement("created_at").SetText(o.CreatedAt.Format(time.RFC3339))
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize orders XML: %w", err)
	}
	return out, nil
}
