package shopify

import (
	"bytes"
	"encoding/json"
	"strconv"
)

type fulfillmentOrdersResponse struct {
	FulfillmentOrders []*fulfillmentOrder `json:"fulfillment_orders"`
}

type fulfillmentOrder struct {
	ID                 int64                  `json:"id"`
	AssignedLocationID int64                  `json:"assigned_location_id"`
	AssignedLocation   *assignedLocation      `json:"assigned_location"`
	LineItems          []*fulfillmentLineItem `json:"line_items"`
}

type assignedLocation struct {
	LocationID int64  `json:"location_id"`
	Name       string `json:"name"`
}

type fulfillmentLineItem struct {
	LineItemID int64 `json:"line_item_id"`
	VariantID  int64 `json:"variant_id"`
}

type locationResponse struct {
	Location struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"location"`
}

type metafieldsResponse struct {
	Metafields []*metafield `json:"metafields"`
}

type metafield struct {
	Namespace string      `json:"namespace"`
	Key       string      `json:"key"`
	Value     interface{} `json:"value"`
}

type risksResponse struct {
	Risks []*risk `json:"risks"`
}

type risk struct {
	Score          *flexFloat `json:"score"`
	Recommendation string     `json:"recommendation"`
	Message        string     `json:"message"`
}

type orderTagsResponse struct {
	Order struct {
		ID   int64  `json:"id"`
		Tags string `json:"tags"`
	} `json:"order"`
}

type orderTagsUpdate struct {
	Order orderTagsPayload `json:"order"`
}

type orderTagsPayload struct {
	ID   int64  `json:"id"`
	Tags string `json:"tags"`
}

type graphQLRequest struct {
	Query string `json:"query"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type addressValidationData struct {
	Order *struct {
		ShippingAddress *struct {
			ValidationResultSummary *string `json:"validationResultSummary"`
		} `json:"shippingAddress"`
	} `json:"order"`
}

// flexFloat Shopify 部分接口以字符串返回数值
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(bytes.TrimSpace(data), `"`)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}
