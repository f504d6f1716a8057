package services

import "github.com/huangang/sitecraft/internal/models"

// ComponentPatch is a partial component record. Set fields replace the
// current value wholesale; maps are not merged key by key. An empty Name
// clears the name and an empty ParentID detaches the component.
type ComponentPatch struct {
	Name          *string        `json:"name,omitempty"`
	ComponentType *string        `json:"component_type,omitempty"`
	ParentID      *string        `json:"parent_id,omitempty"`
	Props         models.JSONMap `json:"props"`
	Styles        models.JSONMap `json:"styles"`
	Content       models.JSONMap `json:"content"`
	OrderIndex    *int           `json:"order_index,omitempty"`
	IsVisible     *bool          `json:"is_visible,omitempty"`
}

func (p *ComponentPatch) IsEmpty() bool {
	return p == nil || (p.Name == nil && p.ComponentType == nil && p.ParentID == nil &&
		p.Props == nil && p.Styles == nil && p.Content == nil &&
		p.OrderIndex == nil && p.IsVisible == nil)
}

// Apply merges the patch into c.
func (p *ComponentPatch) Apply(c *models.Component) {
	if p.Name != nil {
		if *p.Name == "" {
			c.Name = nil
		} else {
			name := *p.Name
			c.Name = &name
		}
	}
	if p.ComponentType != nil {
		c.ComponentType = *p.ComponentType
	}
	if p.ParentID != nil {
		if *p.ParentID == "" {
			c.ParentID = nil
		} else {
			parent := *p.ParentID
			c.ParentID = &parent
		}
	}
	if p.Props != nil {
		c.Props = p.Props.Clone()
	}
	if p.Styles != nil {
		c.Styles = p.Styles.Clone()
	}
	if p.Content != nil {
		c.Content = p.Content.Clone()
	}
	if p.OrderIndex != nil {
		c.OrderIndex = *p.OrderIndex
	}
	if p.IsVisible != nil {
		c.IsVisible = *p.IsVisible
	}
}

// Updates returns the column map written to the store.
func (p *ComponentPatch) Updates() map[string]interface{} {
	updates := make(map[string]interface{})
	if p.Name != nil {
		if *p.Name == "" {
			updates["name"] = nil
		} else {
			updates["name"] = *p.Name
		}
	}
	if p.ComponentType != nil {
		updates["component_type"] = *p.ComponentType
	}
	if p.ParentID != nil {
		if *p.ParentID == "" {
			updates["parent_id"] = nil
		} else {
			updates["parent_id"] = *p.ParentID
		}
	}
	if p.Props != nil {
		updates["props"] = p.Props
	}
	if p.Styles != nil {
		updates["styles"] = p.Styles
	}
	if p.Content != nil {
		updates["content"] = p.Content
	}
	if p.OrderIndex != nil {
		updates["order_index"] = *p.OrderIndex
	}
	if p.IsVisible != nil {
		updates["is_visible"] = *p.IsVisible
	}
	return updates
}
