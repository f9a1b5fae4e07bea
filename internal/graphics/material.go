package graphics

// Material binds a mesh's surface textures. Diffuse is sampled from unit 0,
// specular from unit 1 and the normal map from unit 2.
type Material struct {
	Diffuse   *Texture
	Specular  *Texture
	Normal    *Texture
	Shininess float32
}

// Apply sets the material.* uniforms on p.
func (m *Material) Apply(p *Program) {
	if m.Diffuse != nil {
		_ = p.SetTexture("material.diffuse", 0, m.Diffuse)
	}
	if m.Specular != nil {
		_ = p.SetTexture("material.specular", 1, m.Specular)
	}
	if m.Normal != nil {
		_ = p.SetTexture("material.normal", 2, m.Normal)
	}
	p.SetBool("material.useNormalMap", m.Normal != nil)
	p.SetFloat("material.shininess", m.Shininess)
}
